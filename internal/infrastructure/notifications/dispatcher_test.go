package notifications

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/accountsvc/domain"
)

func TestDispatcher_DeliversMailAndSMS(t *testing.T) {
	mail := &recordingMail{}
	sms := &recordingSMS{}
	d := NewDispatcher(mail, sms, 8, zap.NewNop())

	d.Dispatch(domain.NewNotification(domain.ActivationCodeNotice, "a@b.com").
		WithSubject("Account activation").
		WithBody("123456 is the confirmation code"))
	d.Dispatch(domain.NewNotification(domain.LoginAlertNotice, "a@b.com").
		WithBody("new login").
		WithPhone("+111"))
	d.Close()

	require.Len(t, mail.sent, 2)
	assert.Equal(t, "a@b.com", mail.sent[0].to)
	assert.Equal(t, "Account activation", mail.sent[0].subject)

	// Only the notification carrying a phone goes out by SMS.
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+111", sms.sent[0])
}

func TestDispatcher_TransportFailureIsSwallowed(t *testing.T) {
	mail := &recordingMail{err: errors.New("smtp down")}
	d := NewDispatcher(mail, nil, 8, zap.NewNop())

	d.Dispatch(domain.NewNotification(domain.TemporaryPasswordNotice, "a@b.com").WithBody("999999"))
	d.Close()

	// The failure is logged, never surfaced to the caller.
	assert.Len(t, mail.sent, 1)
}

func TestDispatcher_NilSMSSender(t *testing.T) {
	mail := &recordingMail{}
	d := NewDispatcher(mail, nil, 8, zap.NewNop())

	d.Dispatch(domain.NewNotification(domain.LoginAlertNotice, "a@b.com").WithPhone("+111"))
	d.Close()

	assert.Len(t, mail.sent, 1)
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingMail{}, nil, 1, zap.NewNop())
	d.Close()
	d.Close()
}

type sentMail struct {
	to, subject, body string
	html              bool
}

type recordingMail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *recordingMail) SendEmail(to, subject, body string, html bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{to: to, subject: subject, body: body, html: html})
	return r.err
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingSMS) SendSMS(to, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	return nil
}

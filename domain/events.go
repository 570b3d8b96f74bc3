package domain

import "time"

// NotificationKind defines the type of outbound notification
type NotificationKind string

const (
	ActivationCodeNotice    NotificationKind = "ACTIVATION_CODE"
	TemporaryPasswordNotice NotificationKind = "TEMPORARY_PASSWORD"
	LoginAlertNotice        NotificationKind = "LOGIN_ALERT"
)

// Notification is a best-effort outbound message. It is dispatched after
// the durable state change it reports on has committed, so a transport
// outage cannot roll back or fail the paired mutation.
type Notification struct {
	Kind      NotificationKind
	Email     string
	Phone     string
	Subject   string
	Body      string
	HTML      bool
	CreatedAt time.Time
}

// NewNotification creates a notification addressed to email.
func NewNotification(kind NotificationKind, email string) *Notification {
	return &Notification{
		Kind:      kind,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// WithSubject sets the mail subject
func (n *Notification) WithSubject(subject string) *Notification {
	n.Subject = subject
	return n
}

// WithBody sets the message body
func (n *Notification) WithBody(body string) *Notification {
	n.Body = body
	return n
}

// WithPhone additionally targets an SMS channel
func (n *Notification) WithPhone(phone string) *Notification {
	n.Phone = phone
	return n
}

// AsHTML marks the body as HTML content
func (n *Notification) AsHTML() *Notification {
	n.HTML = true
	return n
}

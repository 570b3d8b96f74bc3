package notifications

import (
	"sync"

	"go.uber.org/zap"

	"github.com/you/accountsvc/domain"
)

// Dispatcher implements domain.Notifier. Notifications are queued and
// delivered by a background worker so a mail or SMS transport outage
// cannot fail the durable state change it is paired with.
type Dispatcher struct {
	mail   domain.MailSender
	sms    domain.SMSSender
	events chan *domain.Notification
	logger *zap.Logger
	wg     sync.WaitGroup
	once   sync.Once
}

// NewDispatcher creates a dispatcher with the given queue size and starts
// its delivery worker.
func NewDispatcher(mail domain.MailSender, sms domain.SMSSender, buffer int, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		mail:   mail,
		sms:    sms,
		events: make(chan *domain.Notification, buffer),
		logger: logger,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch implements domain.Notifier. Never blocks: when the queue is
// full the notification is dropped and logged.
func (d *Dispatcher) Dispatch(n *domain.Notification) {
	select {
	case d.events <- n:
	default:
		d.logger.Warn("notification queue full, dropping",
			zap.String("kind", string(n.Kind)),
			zap.String("email", n.Email))
	}
}

// Close stops accepting notifications and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.events) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for n := range d.events {
		if err := d.mail.SendEmail(n.Email, n.Subject, n.Body, n.HTML); err != nil {
			d.logger.Error("email delivery failed",
				zap.String("kind", string(n.Kind)),
				zap.String("email", n.Email),
				zap.Error(err))
		}
		if n.Phone != "" && d.sms != nil {
			if err := d.sms.SendSMS(n.Phone, n.Body); err != nil {
				d.logger.Error("sms delivery failed",
					zap.String("kind", string(n.Kind)),
					zap.String("phone", n.Phone),
					zap.Error(err))
			}
		}
	}
}

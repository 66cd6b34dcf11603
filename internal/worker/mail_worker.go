package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/spec-kit/helpdesk/internal/config"
)

// Mail is a plain-text message queued for delivery.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message.
type Sender interface {
	Send(mail Mail) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from notification settings.
func NewSMTPSender(cfg config.NotificationConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

// Send dials the relay and sends mail.
func (s *SMTPSender) Send(mail Mail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/plain", mail.Body)
	return s.dialer.DialAndSend(m)
}

// MailWorker drains a bounded queue on a single goroutine so requests never
// wait on SMTP.
type MailWorker struct {
	queue  chan Mail
	sender Sender
	logger *zap.Logger

	once sync.Once
	wg   sync.WaitGroup
}

// NewMailWorker builds a worker with a queue of size entries.
func NewMailWorker(sender Sender, size int, logger *zap.Logger) *MailWorker {
	if size <= 0 {
		size = 100
	}
	return &MailWorker{
		queue:  make(chan Mail, size),
		sender: sender,
		logger: logger,
	}
}

// Start launches the delivery loop. It returns when ctx is cancelled or the
// worker is stopped.
func (w *MailWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case mail, ok := <-w.queue:
				if !ok {
					return
				}
				if err := w.sender.Send(mail); err != nil {
					w.logger.Warn("failed to send mail",
						zap.String("to", mail.To),
						zap.String("subject", mail.Subject),
						zap.Error(err))
					continue
				}
				w.logger.Debug("mail sent", zap.String("to", mail.To), zap.String("subject", mail.Subject))
			}
		}
	}()
}

// Enqueue schedules mail without blocking. It returns false when the queue is
// full and the message was dropped.
func (w *MailWorker) Enqueue(mail Mail) bool {
	select {
	case w.queue <- mail:
		return true
	default:
		w.logger.Warn("mail queue full, dropping message", zap.String("to", mail.To))
		return false
	}
}

// Stop closes the queue and waits for queued mail to drain.
func (w *MailWorker) Stop() {
	w.once.Do(func() {
		close(w.queue)
	})
	w.wg.Wait()
}

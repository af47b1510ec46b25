package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"sync"

	"orderlifecycle/internal/core/domain/model/order"
)

var ErrEmailQueueFull = errors.New("email queue is full")

// Email is a rendered customer message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// MailSender delivers one message.
type MailSender interface {
	Send(ctx context.Context, from string, msg Email) error
}

// EmailNotifier renders customer e-mails and queues them in memory. Flush,
// called by the scheduler, drains the queue through the sender.
type EmailNotifier struct {
	from   string
	sender MailSender
	logger *slog.Logger
	queue  chan Email

	flushMu sync.Mutex
}

func NewEmailNotifier(from string, sender MailSender, queueSize int, logger *slog.Logger) *EmailNotifier {
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{
		from:   from,
		sender: sender,
		logger: logger.With("component", "email_notifier"),
		queue:  make(chan Email, queueSize),
	}
}

// Notify enqueues a message for order creation and status changes. Assignment
// events are internal and produce no e-mail.
func (n *EmailNotifier) Notify(_ context.Context, o *order.Order, e order.Event) error {
	msg, ok := RenderEmail(o, e)
	if !ok {
		return nil
	}

	select {
	case n.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w (capacity %d)", ErrEmailQueueFull, cap(n.queue))
	}
}

// Pending reports the number of queued messages.
func (n *EmailNotifier) Pending() int {
	return len(n.queue)
}

// Flush sends every message queued at call time. Failed messages are dropped.
func (n *EmailNotifier) Flush(ctx context.Context) (int, error) {
	n.flushMu.Lock()
	defer n.flushMu.Unlock()

	var (
		sent int
		errs []error
	)
	for pending := len(n.queue); pending > 0; pending-- {
		if err := ctx.Err(); err != nil {
			return sent, errors.Join(append(errs, err)...)
		}

		var msg Email
		select {
		case msg = <-n.queue:
		default:
			return sent, errors.Join(errs...)
		}

		if err := n.sender.Send(ctx, n.from, msg); err != nil {
			n.logger.WarnContext(ctx, "email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

// RenderEmail builds the customer message for e, if any.
func RenderEmail(o *order.Order, e order.Event) (Email, bool) {
	if o == nil {
		return Email{}, false
	}

	ref := shortRef(e.OrderID.String())
	var subject, headline string
	switch e.Kind {
	case order.EventCreated:
		subject = fmt.Sprintf("Order %s received", ref)
		headline = fmt.Sprintf("We have received your order %s.", ref)
	case order.EventStatusChanged:
		subject = fmt.Sprintf("Order %s is now %s", ref, e.Current)
		headline = fmt.Sprintf("Your order %s moved from %s to %s.", ref, e.Previous, e.Current)
	default:
		return Email{}, false
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n%s\n", o.Contact().Name(), headline)
	if e.Note != "" {
		fmt.Fprintf(&body, "\nNote: %s\n", e.Note)
	}
	fmt.Fprintf(&body, "\nDelivery address: %s\n", o.Address())

	return Email{To: o.Contact().Email(), Subject: subject, Body: body.String()}, true
}

func shortRef(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// SMTPSender sends through a plain SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
}

func NewSMTPSender(host, port, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: net.JoinHostPort(host, port), auth: auth}
}

func (s *SMTPSender) Send(ctx context.Context, from string, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return smtp.SendMail(s.addr, s.auth, from, []string{msg.To}, FormatMessage(from, msg))
}

// FormatMessage renders msg as an RFC 5322 text message.
func FormatMessage(from string, msg Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

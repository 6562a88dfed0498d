package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/yomiyu15/Workingspacebackend/internal/config"
	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var confirmedTmpl = template.Must(template.New("confirmed").Parse(`
<p>Hello {{.Name}},</p>
<p>Your booking for <strong>{{.Space}}</strong> has been <strong>confirmed</strong>.</p>
<p><strong>Dates:</strong> {{.Start}} - {{.End}}</p>
<p><strong>Total:</strong> {{.Total}}</p>
<p>Thank you for choosing us!</p>
`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(`
<p>Hello {{.Name}},</p>
<p>We regret to inform you that your booking for <strong>{{.Space}}</strong> has been <strong>cancelled</strong>.</p>
<p><strong>Dates:</strong> {{.Start}} - {{.End}}</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p>We apologize for the inconvenience.</p>
`))

type mailData struct {
	Name   string
	Space  string
	Start  string
	End    string
	Total  string
	Reason string
}

func newMailData(b domain.BookingView) mailData {
	space := fmt.Sprintf("workspace #%d", b.WorkspaceID)
	if b.Workspace != nil && b.Workspace.Name != "" {
		space = b.Workspace.Name
	}
	return mailData{
		Name:  b.UserName,
		Space: space,
		Start: b.StartDate.String(),
		End:   b.EndDate.String(),
		Total: fmt.Sprintf("%.2f %s", b.TotalPrice, b.Currency),
	}
}

// Mailer sends booking review outcomes over SMTP.
type Mailer struct {
	from   string
	sender Sender
}

func NewMailer(from string, sender Sender) *Mailer {
	return &Mailer{from: from, sender: sender}
}

// NewSMTPMailer dials the configured server for every message.
func NewSMTPMailer(cfg config.SMTPConfig) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewMailer(cfg.From, d)
}

func (m *Mailer) NotifyBookingConfirmed(ctx context.Context, to string, b domain.BookingView) error {
	data := newMailData(b)
	return m.send(ctx, to, "Booking Confirmed: "+data.Space, confirmedTmpl, data)
}

func (m *Mailer) NotifyBookingCancelled(ctx context.Context, to string, b domain.BookingView, reason string) error {
	data := newMailData(b)
	data.Reason = reason
	return m.send(ctx, to, "Booking Cancelled: "+data.Space, cancelledTmpl, data)
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data mailData) error {
	msg, err := m.buildMessage(to, subject, tmpl, data)
	if err != nil {
		return err
	}

	// gomail has no context support; run the dial so a deadline still bounds the caller.
	done := make(chan error, 1)
	go func() { done <- m.sender.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send %q to %s: %w", subject, to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send %q to %s: %w", subject, to, ctx.Err())
	}
}

func (m *Mailer) buildMessage(to, subject string, tmpl *template.Template, data mailData) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render %s mail: %w", tmpl.Name(), err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())
	return msg, nil
}

// LogNotifier records review outcomes when no SMTP server is configured.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyBookingConfirmed(_ context.Context, to string, b domain.BookingView) error {
	n.log.WithFields(logrus.Fields{"booking_id": b.ID, "to": to}).Info("[MAIL] smtp disabled, skipping confirmation")
	return nil
}

func (n *LogNotifier) NotifyBookingCancelled(_ context.Context, to string, b domain.BookingView, reason string) error {
	n.log.WithFields(logrus.Fields{"booking_id": b.ID, "to": to, "reason": reason}).Info("[MAIL] smtp disabled, skipping cancellation")
	return nil
}

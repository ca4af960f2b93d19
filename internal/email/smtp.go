package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
// Every notification goes to the single shop inbox in notifyEmail.
type SMTPSender struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromEmail   string
	notifyEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName, notifyEmail string) *SMTPSender {
	return &SMTPSender{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		fromName:    fromName,
		fromEmail:   fromEmail,
		notifyEmail: notifyEmail,
	}
}

func (s *SMTPSender) buildMessage(replyTo, subject, htmlContent string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(s.notifyEmail); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, replyTo, subject, htmlContent string) error {
	msg, err := s.buildMessage(replyTo, subject, htmlContent)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendQuoteNotification(ctx context.Context, n QuoteNotification) error {
	content, err := renderQuoteNotification(n)
	if err != nil {
		return err
	}
	return s.send(ctx, n.Email, fmt.Sprintf(subjectQuoteNotificationFmt, n.Product), content)
}

func (s *SMTPSender) SendCommentNotification(ctx context.Context, n CommentNotification) error {
	content, err := renderCommentNotification(n)
	if err != nil {
		return err
	}
	return s.send(ctx, n.Email, fmt.Sprintf(subjectCommentNotificationFmt, n.Name), content)
}

func renderQuoteNotification(n QuoteNotification) (string, error) {
	return renderEmailTemplate("quote_notification.html", quoteNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:      "Solicitud de cotización",
			Heading:    "Nueva solicitud de cotización",
			Subheading: n.Product,
			Reference:  n.Reference,
		},
		Name:    n.Name,
		Email:   n.Email,
		Phone:   n.Phone,
		City:    n.City,
		Product: n.Product,
		Message: n.Message,
	})
}

func renderCommentNotification(n CommentNotification) (string, error) {
	return renderEmailTemplate("comment_notification.html", commentNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:     "Comentario",
			Heading:   "Nuevo comentario",
			Reference: n.Reference,
		},
		Name:    n.Name,
		Email:   n.Email,
		Message: n.Message,
	})
}

package notify

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/talkincode/streamstore/internal/cart"
)

// Notifier is told about every checkout. Delivery of the WhatsApp message
// itself is out of our hands; this is a copy for the store owner.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *cart.Order) error
}

// Noop is used when notifications are disabled.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, *cart.Order) error { return nil }

// Sender abstracts gomail so tests can capture messages.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

type SMTPNotifier struct {
	cfg    SMTPConfig
	sender Sender
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPNotifier{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

// WithSender replaces the SMTP dialer.
func (n *SMTPNotifier) WithSender(s Sender) *SMTPNotifier {
	n.sender = s
	return n
}

func (n *SMTPNotifier) Message(order *cart.Order) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("Novo pedido #%s", order.Ref))
	m.SetBody("text/plain", order.Message+"\n\n"+order.URL)
	return m
}

func (n *SMTPNotifier) OrderPlaced(ctx context.Context, order *cart.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sender.DialAndSend(n.Message(order)); err != nil {
		return errors.Wrapf(err, "send order %s notification", order.Ref)
	}
	zap.L().Info("order notification sent", zap.String("ref", order.Ref), zap.String("to", n.cfg.To))
	return nil
}

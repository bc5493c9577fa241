package smtp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	netsmtp "net/smtp"
	"strconv"

	"github.com/domodwyer/mailyak/v3"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// Mailer sends ticket confirmations over SMTP with STARTTLS when the server
// offers it.
type Mailer struct {
	cfg  Config
	addr string
	auth netsmtp.Auth
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth: netsmtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

func (m *Mailer) compose(mail ports.TicketMail) (*mailyak.MailYak, error) {
	html, err := renderTicket(m.cfg.FromName, mail)
	if err != nil {
		return nil, fmt.Errorf("render ticket mail: %w", err)
	}

	msg := mailyak.New(m.addr, m.auth)
	msg.To(mail.To)
	msg.From(m.cfg.Username)
	msg.FromName(m.cfg.FromName)
	msg.Subject("Your " + m.cfg.FromName + " Ticket")
	msg.HTML().Set(html)
	msg.Plain().Set(fmt.Sprintf("Ticket %s for %s, %d person(s) at %s. Show the attached QR code at the counter.",
		mail.TicketCode, mail.BuyerName, mail.PersonCount, mail.Location))
	msg.AttachInlineWithMimeType(qrContentID, bytes.NewReader(mail.QRPNG), "image/png")

	return msg, nil
}

// SendTicket has no context support in the SMTP client; ctx is only checked
// before dialing.
func (m *Mailer) SendTicket(ctx context.Context, mail ports.TicketMail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.compose(mail)
	if err != nil {
		return err
	}

	if err := msg.Send(); err != nil {
		return fmt.Errorf("smtp send to %s: %w", mail.To, err)
	}

	slog.Info("ticket mail sent", "to", mail.To, "ticket_code", mail.TicketCode)
	return nil
}

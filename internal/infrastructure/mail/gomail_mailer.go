// Package mail implementa el puerto NotificationMailer sobre SMTP con gomail.
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
)

var _ apppayrun.NotificationMailer = (*GomailMailer)(nil)

// Config parámetros SMTP y de presentación del remitente.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string // cuenta autenticada
	FromAlias string // nombre visible, distinto de la cuenta
	CC        string // copia fija; vacío = sin CC
}

// GomailMailer envía los avisos con adjunto vía SMTP.
type GomailMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewGomailMailer construye el mailer.
func NewGomailMailer(cfg Config) *GomailMailer {
	return &GomailMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send envía un aviso. El destinatario vacío es un error: la fila queda
// aprobada y el operador corrige el correo antes de la próxima corrida.
func (m *GomailMailer) Send(_ context.Context, msg apppayrun.OutboundMessage) error {
	if msg.To == "" {
		return fmt.Errorf("mail: la fila no tiene correo de destinatario")
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.From, m.cfg.FromAlias)
	gm.SetHeader("To", msg.To)
	if m.cfg.CC != "" {
		gm.SetHeader("Cc", m.cfg.CC)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	gm.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(msg.Attachment)
		return err
	}))

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	return nil
}

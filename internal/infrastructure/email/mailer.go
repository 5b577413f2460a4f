// Package email envía los correos transaccionales (invitación y recuperación
// de contraseña) por SMTP. El envío es fire-and-forget: un fallo del SMTP no
// debe voltear la petición HTTP que lo disparó, solo se loguea.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/clientbottle/clientbottle-api/pkg/config"
	"github.com/clientbottle/clientbottle-api/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Mailer implementa invite.Mailer sobre gomail.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
	log         *logger.Logger
}

// NewMailer construye el mailer con la configuración SMTP.
func NewMailer(cfg config.SMTPConfig, frontend config.FrontendConfig, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:        cfg.User,
		frontendURL: frontend.BaseURL,
		log:         log,
	}
}

// SendInvite envía el correo de invitación con el link de confirmación.
func (m *Mailer) SendInvite(email, token string) {
	link := fmt.Sprintf("%s/user/confirm?token=%s", m.frontendURL, token)
	m.sendAsync(email, "Convite para o Client Bottle", "invite.html", map[string]string{
		"Link": link,
	})
}

// SendRecovery envía el correo de recuperación de contraseña.
func (m *Mailer) SendRecovery(email, token string) {
	link := fmt.Sprintf("%s/user/recover_password?token=%s", m.frontendURL, token)
	m.sendAsync(email, "Recuperação de senha", "recovery.html", map[string]string{
		"Link": link,
	})
}

func (m *Mailer) sendAsync(to, subject, tmpl string, data map[string]string) {
	go func() {
		var body bytes.Buffer
		if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
			m.log.Error().Err(err).Str("template", tmpl).Msg("email: renderizar template")
			return
		}
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", body.String())

		if err := m.dialer.DialAndSend(msg); err != nil {
			m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("email: enviar correo")
			return
		}
		m.log.Info().Str("to", to).Str("subject", subject).Msg("email: correo enviado")
	}()
}

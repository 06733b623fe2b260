package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AlertTo  string
}

func NewEmailSender(host string, port int, user, password, from, alertTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		AlertTo:  alertTo,
	}
}

var leadWonTemplate = template.Must(template.New("lead_won").Parse(`
<h2>Negócio fechado! 🎉</h2>
<p>O lead <strong>{{.Name}}</strong> foi movido para <strong>Fechado Ganho</strong>.</p>
<p>Valor estimado: R$ {{printf "%.2f" .Value}}</p>
`))

type leadWonData struct {
	Name  string
	Value float64
}

// SendLeadWon avisa a equipe quando um lead fecha. Sem destinatário
// configurado vira no-op silencioso.
func (s *EmailSender) SendLeadWon(leadName string, value float64) error {
	if s.AlertTo == "" {
		return nil
	}

	var body bytes.Buffer
	if err := leadWonTemplate.Execute(&body, leadWonData{Name: leadName, Value: value}); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.AlertTo)
	m.SetHeader("Subject", fmt.Sprintf("Lead fechado: %s 🎉", leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

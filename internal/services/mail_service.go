package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"

	"github.com/ngocthb/OJT-BE/internal/utils"
)

// MailService delivers owner notifications over SMTP. It satisfies Notifier;
// callers decide what to do with a delivery error (the comment flows log and
// move on).
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	SiteURL  string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	enabled := host != "" && port != "" && user != "" && pass != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		SiteURL:  os.Getenv("SITE_URL"),
		Enabled:  enabled,
	}
}

const notificationTemplate = `<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 500px; margin: auto; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #007bff; text-align: center;">{{.Heading}}</h2>
  <p style="font-size: 16px;">Hello,</p>
  <p style="font-size: 16px;">{{.Intro}}</p>
  <div style="padding: 10px; border-radius: 8px; background-color: #f3f3f3;">
    <p style="margin: 0; font-size: 16px; font-weight: bold;">{{.ActorName}} ({{.ActorRole}})</p>
    <p style="margin: 0; font-size: 14px; color: #666;">{{.ActorEmail}}</p>
  </div>
  <div style="margin-top: 15px; padding: 10px; border-left: 4px solid #007bff; background-color: #f9f9f9; border-radius: 5px;">
    {{.Content}}
  </div>
  <p style="font-size: 16px; margin-top: 15px;">You can check the full details of your claim in your account.</p>
  <a href="{{.ClaimLink}}" style="display: block; text-align: center; padding: 10px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; font-size: 16px; margin-top: 10px;">View Claim</a>
</div>`

var mailTemplate = template.Must(template.New("notification").Parse(notificationTemplate))

func (s *MailService) subject(kind NotificationKind) (subject, heading, intro string) {
	if kind == NotificationReply {
		return "New Reply on Your Comment",
			"New Reply on Your Comment",
			"You have received a new reply to your comment:"
	}
	return "New Comment on Your Claim",
		"New Comment on Your Claim",
		"You have received a new comment on your claim:"
}

func (s *MailService) buildBody(n Notification) (string, error) {
	_, heading, intro := s.subject(n.Kind)
	data := map[string]interface{}{
		"Heading":    heading,
		"Intro":      intro,
		"ActorName":  n.ActorName,
		"ActorRole":  n.ActorRole,
		"ActorEmail": n.ActorEmail,
		"Content":    utils.RenderMarkdown(n.Content),
		"ClaimLink":  fmt.Sprintf("%s/claimer/pending/%s", s.SiteURL, n.ClaimID),
	}

	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render notification template: %w", err)
	}
	return buf.String(), nil
}

// Notify sends one notification email. Delivery is awaited so the caller can
// observe (and then ignore) failures.
func (s *MailService) Notify(n Notification) error {
	if !s.Enabled {
		log.Printf("Mail disabled, skipping %s notification to %s", n.Kind, n.RecipientEmail)
		return nil
	}

	subject, _, _ := s.subject(n.Kind)
	body, err := s.buildBody(n)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n%s\r\n%s",
		n.RecipientEmail, s.From, subject, mime, body))

	if err := smtp.SendMail(addr, auth, s.From, []string{n.RecipientEmail}, msg); err != nil {
		log.Printf("Failed to send email to %s: %v", n.RecipientEmail, err)
		return err
	}
	log.Printf("Email sent to %s: %s", n.RecipientEmail, subject)
	return nil
}

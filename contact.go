package main

import (
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/store"
)

type contactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Subject string `form:"subject" binding:"max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// mailer delivers contact messages to the site owner.
type mailer interface {
	Send(m store.Message) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// newMailer returns an SMTP mailer, or nil when credentials are not configured.
func newMailer(cfg config.SMTPConfig) mailer {
	if !cfg.Enabled() {
		log.Println("SMTP credentials not configured; contact messages will only be stored")
		return nil
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(msg store.Message) error {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	if msg.Subject != "" {
		subject += " - " + msg.Subject
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	raw := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, raw); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// headerSafe strips line breaks so form input cannot inject mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Handle contact form submission with HTMX
func (s *server) contact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please provide your name, a valid email address and a message.",
		})
		return
	}

	msg, err := s.store.SaveMessage(c.Request.Context(), store.Message{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Subject: strings.TrimSpace(form.Subject),
		Body:    form.Message,
	})
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	log.Printf("Contact message %s stored from %s", msg.ID, hashIP(s.admin.salt, c.ClientIP()))

	if s.mailer != nil {
		if err := s.mailer.Send(msg); err != nil {
			// stored; the admin message list shows it as not mailed
			log.Printf("Error sending email for message %s: %v", msg.ID, err)
		} else if err := s.store.MarkDelivered(c.Request.Context(), msg.ID); err != nil {
			log.Printf("Error marking message %s delivered: %v", msg.ID, err)
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

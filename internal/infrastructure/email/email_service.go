package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/core/ports"
)

// EmailConfig holds email service configuration
type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	StoreName      string
	BaseURL        string
}

// EmailService sends transactional storefront mail through SendGrid.
type EmailService struct {
	config    *EmailConfig
	logger    *logrus.Logger
	client    *sendgrid.Client
	templates map[string]*template.Template
}

var templateSources = map[string]string{
	"welcome": `<h1>Welcome to {{.StoreName}}, {{.FirstName}}!</h1>
<p>Your account is ready. Browse the catalog at <a href="{{.BaseURL}}">{{.BaseURL}}</a>.</p>`,
	"order_confirmation": `<h1>Thanks for your order, {{.FirstName}}!</h1>
<p>Order <strong>{{.OrderID}}</strong> was received and is now <strong>{{.Status}}</strong>.</p>
<p>Total: {{.Total}}</p>
<p>You can follow its progress at <a href="{{.BaseURL}}/orders/{{.OrderID}}">{{.BaseURL}}/orders/{{.OrderID}}</a>.</p>`,
}

// NewEmailService creates a new email service instance
func NewEmailService(config *EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	templates := make(map[string]*template.Template, len(templateSources))
	for name, src := range templateSources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &EmailService{
		config:    config,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// SendWelcomeEmail implements ports.EmailService.
func (e *EmailService) SendWelcomeEmail(_ context.Context, u *user.User) error {
	body, err := e.render("welcome", map[string]any{
		"StoreName": e.config.StoreName,
		"FirstName": u.FirstName,
		"BaseURL":   e.config.BaseURL,
	})
	if err != nil {
		return err
	}
	return e.sendEmail(u.Email, fmt.Sprintf("Welcome to %s", e.config.StoreName), body)
}

// SendOrderConfirmation implements ports.EmailService.
func (e *EmailService) SendOrderConfirmation(_ context.Context, u *user.User, o *order.Order) error {
	body, err := e.render("order_confirmation", map[string]any{
		"FirstName": u.FirstName,
		"OrderID":   o.ID.String(),
		"Status":    string(o.Status),
		"Total":     fmt.Sprintf("$%.2f", float64(o.TotalCents)/100),
		"BaseURL":   e.config.BaseURL,
	})
	if err != nil {
		return err
	}
	return e.sendEmail(u.Email, "Your order confirmation", body)
}

func (e *EmailService) render(name string, data any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).WithError(err).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}

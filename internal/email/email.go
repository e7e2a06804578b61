// Package email sends swap notifications over SMTP.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
	"time"
)

// Template names
const (
	TemplateRequestReceived = "swap_request_received"
	TemplateRequestDecided  = "swap_request_decided"
	TemplatePendingDigest   = "pending_digest"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service renders templates and delivers them over SMTP.
type Service struct {
	config    *Config
	templates map[string]*template.Template
	logger    *slog.Logger
}

func NewService(config *Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		logger:    logger.With(slog.String("component", "email")),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// RequestReceivedData fills the new request template.
type RequestReceivedData struct {
	RecipientName  string
	SenderName     string
	OfferedSkill   string
	RequestedSkill string
	Message        string
	RequestsURL    string
}

// RequestDecidedData fills the decision template.
type RequestDecidedData struct {
	SenderName     string
	RecipientName  string
	OfferedSkill   string
	RequestedSkill string
	Accepted       bool
	ProfileURL     string
}

// PendingDigestData fills the daily reminder.
type PendingDigestData struct {
	RecipientName string
	Count         int
	OldestDays    int
	RequestsURL   string
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #6366f1 0%, #8b5cf6 100%); color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .card { background: white; border-radius: 8px; padding: 16px; margin: 16px 0; }
        .btn { display: inline-block; background: #6366f1; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">`

const layoutFoot = `
    <div class="footer">Skill Swap</div>
</div>
</body>
</html>`

func (s *Service) loadTemplates() {
	s.templates[TemplateRequestReceived] = template.Must(template.New(TemplateRequestReceived).Parse(layoutHead + `
    <div class="header"><h2>New Skill Swap Request</h2></div>
    <div class="content">
        <p>Hi {{.RecipientName}},</p>
        <p><strong>{{.SenderName}}</strong> would like to swap skills with you.</p>
        <div class="card">
            <p><strong>They offer:</strong> {{.OfferedSkill}}</p>
            <p><strong>They want:</strong> {{.RequestedSkill}}</p>
            {{if .Message}}<p><strong>Message:</strong><br/>{{.Message}}</p>{{end}}
        </div>
        <a href="{{.RequestsURL}}" class="btn">Review Request</a>
    </div>` + layoutFoot))

	s.templates[TemplateRequestDecided] = template.Must(template.New(TemplateRequestDecided).Parse(layoutHead + `
    <div class="header"><h2>{{if .Accepted}}Request Accepted{{else}}Request Declined{{end}}</h2></div>
    <div class="content">
        <p>Hi {{.SenderName}},</p>
        {{if .Accepted}}
        <p><strong>{{.RecipientName}}</strong> accepted your request to trade {{.OfferedSkill}} for {{.RequestedSkill}}.</p>
        {{else}}
        <p><strong>{{.RecipientName}}</strong> declined your request to trade {{.OfferedSkill}} for {{.RequestedSkill}}.</p>
        {{end}}
        <a href="{{.ProfileURL}}" class="btn">View Profile</a>
    </div>` + layoutFoot))

	s.templates[TemplatePendingDigest] = template.Must(template.New(TemplatePendingDigest).Parse(layoutHead + `
    <div class="header"><h2>Requests Waiting For You</h2></div>
    <div class="content">
        <p>Hi {{.RecipientName}},</p>
        <p>You have <strong>{{.Count}}</strong> pending skill swap request{{if ne .Count 1}}s{{end}}.
        The oldest has been waiting {{.OldestDays}} days.</p>
        <a href="{{.RequestsURL}}" class="btn">Review Requests</a>
    </div>` + layoutFoot))
}

// Render executes a named template.
func (s *Service) Render(templateName string, data any) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

// SendWithTemplate renders and sends an HTML email.
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data any) error {
	body, err := s.Render(templateName, data)
	if err != nil {
		return err
	}
	return s.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (s *Service) buildMessage(email *Email) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.Body)
	}
	return msg.Bytes()
}

// Send delivers an email. Without a configured host it logs and returns nil.
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		s.logger.Debug("email_skipped", slog.String("subject", email.Subject))
		return nil
	}

	msg := s.buildMessage(email)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if !s.config.UseTLS {
		return smtp.SendMail(addr, auth, s.config.From, email.To, msg)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("TLS dial error: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("SMTP client error: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("auth error: %w", err)
	}
	if err = client.Mail(s.config.From); err != nil {
		return fmt.Errorf("mail error: %w", err)
	}
	for _, rcpt := range email.To {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt error: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data error: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}
	return client.Quit()
}

// ============================================
// Email Queue
// ============================================

// Sender is what the queue delivers through.
type Sender interface {
	SendWithTemplate(to []string, subject, templateName string, data any) error
}

const maxRetries = 3

type queuedEmail struct {
	to           []string
	subject      string
	templateName string
	data         any
	retries      int
}

// Queue sends emails from background workers with bounded retries.
type Queue struct {
	sender  Sender
	queue   chan *queuedEmail
	done    chan struct{}
	wg      sync.WaitGroup
	backoff time.Duration
	logger  *slog.Logger
	once    sync.Once
}

// NewQueue starts workers draining the queue.
func NewQueue(sender Sender, workers int, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		sender:  sender,
		queue:   make(chan *queuedEmail, 1000),
		done:    make(chan struct{}),
		backoff: 2 * time.Second,
		logger:  logger.With(slog.String("component", "email_queue")),
	}
	for i := 0; i < max(1, workers); i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case email := <-q.queue:
			q.deliver(email)
		}
	}
}

func (q *Queue) deliver(email *queuedEmail) {
	for {
		err := q.sender.SendWithTemplate(email.to, email.subject, email.templateName, email.data)
		if err == nil {
			return
		}
		if email.retries >= maxRetries {
			q.logger.Error("email_send_failed",
				slog.String("template", email.templateName), slog.Any("error", err))
			return
		}
		email.retries++
		select {
		case <-q.done:
			return
		case <-time.After(q.backoff * time.Duration(email.retries)):
		}
	}
}

// Enqueue schedules an email. It reports false when the queue is full or stopped.
func (q *Queue) Enqueue(to []string, subject, templateName string, data any) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.queue <- &queuedEmail{to: to, subject: subject, templateName: templateName, data: data}:
		return true
	default:
		q.logger.Warn("email_queue_full", slog.String("template", templateName))
		return false
	}
}

// Stop halts the workers and waits for them to exit.
func (q *Queue) Stop() {
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

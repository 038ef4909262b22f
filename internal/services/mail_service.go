package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/wneessen/go-mail"

	"tripplanner/internal/config"
)

type IMailService interface {
	SendShareInvite(ctx context.Context, to, tripTitle, shareURL, message string) error
}

// SMTPConfig holds the SMTP settings and the branding used in the templates.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	AppName  string
}

func SMTPConfigFrom(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: "Trip Planner",
		AppName:  "Trip Planner",
	}
}

// sender is the part of *mail.Client the service uses.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type smtpMailService struct {
	cfg    SMTPConfig
	client sender
	html   *template.Template
	text   *texttemplate.Template
	now    func() time.Time
}

// NewSMTPMailService returns nil when no SMTP host is configured.
func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTLSPortPolicy(mail.TLSOpportunistic)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newMailService(cfg, client), nil
}

func newMailService(cfg SMTPConfig, client sender) *smtpMailService {
	return &smtpMailService{
		cfg:    cfg,
		client: client,
		html:   template.Must(template.New("inviteHTML").Parse(inviteHTMLTemplate)),
		text:   texttemplate.Must(texttemplate.New("inviteText").Parse(inviteTextTemplate)),
		now:    time.Now,
	}
}

type EmailData struct {
	Title     string
	Intro     string
	Note      string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

func (s *smtpMailService) SendShareInvite(ctx context.Context, to, tripTitle, shareURL, message string) error {
	subject := fmt.Sprintf("%s: %s", s.cfg.AppName, tripTitle)
	html, text, err := s.render(EmailData{
		Title:     tripTitle,
		Intro:     "Someone shared a trip itinerary with you. Open it to see every stop, date and booking.",
		Note:      strings.TrimSpace(message),
		ButtonURL: shareURL,
		ButtonTxt: "View itinerary",
		AppName:   s.cfg.AppName,
		Year:      s.now().Year(),
	})
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	return s.client.DialAndSendWithContext(ctx, msg)
}

func (s *smtpMailService) render(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.html.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.text.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

const inviteHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 16px; overflow: hidden; box-shadow: 0 20px 60px rgba(0, 0, 0, 0.08); }
    .header { padding: 24px 32px; border-bottom: 1px solid rgba(0, 0, 0, 0.06); font-weight: 700; color: #2563eb; text-transform: uppercase; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 26px; }
    p { margin: 0 0 20px; line-height: 1.7; color: #475569; }
    .note { border-left: 3px solid #3b82f6; padding-left: 12px; font-style: italic; }
    .btn { display: inline-block; padding: 14px 28px; background: #2563eb; color: #ffffff !important; text-decoration: none; border-radius: 12px; font-weight: 600; }
    .muted { color: #64748b; font-size: 13px; word-break: break-all; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; background: #f8fafc; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Note}}<p class="note">{{.Note}}</p>{{end}}
      <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
      <p class="muted">If the button doesn't work, copy and paste this link into your browser:<br>{{.ButtonURL}}</p>
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const inviteTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Note}}
"{{.Note}}"
{{end}}
Open this link:
{{.ButtonURL}}

{{.AppName}} (c) {{.Year}}
`

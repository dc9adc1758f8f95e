package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
)

// TemplateData contains all the fields available for email template rendering
type TemplateData struct {
	Greeting     string // Dynamic greeting based on recipient count
	VideoName    string
	VideoURL     string
	CensoredNote string // e.g., "3 words were silenced"
	SenderName   string
}

// EmailTemplate contains the templates for rendering emails
type EmailTemplate struct {
	SubjectFormat string
	PlainText     string
	HTML          string
}

// DefaultTemplate is the standard announcement for a cleaned video
var DefaultTemplate = EmailTemplate{
	SubjectFormat: "Clean version ready: {{.VideoName}}",
	PlainText: `{{.Greeting}}

A clean version of {{.VideoName}} is ready ({{.CensoredNote}}).

Video: {{.VideoURL}}

Thanks!
{{.SenderName}}`,
	HTML: `<div dir="ltr">{{.Greeting}}<br><br>
A clean version of <a href="{{.VideoURL}}">{{.VideoName}}</a> is ready ({{.CensoredNote}}).<br><br>
Thanks!<br>
{{.SenderName}}</div>`,
}

// NewTemplateData builds template data for a request
func NewTemplateData(req *EmailRequest) TemplateData {
	return TemplateData{
		Greeting:     FormatGreeting(req.To),
		VideoName:    req.VideoName,
		VideoURL:     req.VideoURL,
		CensoredNote: FormatCensoredNote(req.CensoredCount),
		SenderName:   req.SenderName,
	}
}

// FormatGreeting creates an appropriate greeting based on number of recipients
// 1 recipient: "Dear Maria,"
// 2 recipients: "Dear Maria & Sam,"
// 3+ recipients: "Hey Everyone!"
func FormatGreeting(recipients []Recipient) string {
	switch len(recipients) {
	case 0:
		return "Hello,"
	case 1:
		return fmt.Sprintf("Dear %s,", firstName(recipients[0].Name))
	case 2:
		return fmt.Sprintf("Dear %s & %s,", firstName(recipients[0].Name), firstName(recipients[1].Name))
	default:
		return "Hey Everyone!"
	}
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "Friend"
	}
	return fields[0]
}

// FormatCensoredNote describes how many words were silenced
func FormatCensoredNote(count int) string {
	switch count {
	case 0:
		return "no words needed silencing"
	case 1:
		return "1 word was silenced"
	default:
		return fmt.Sprintf("%d words were silenced", count)
	}
}

// RenderSubject renders the email subject using the template
func (t *EmailTemplate) RenderSubject(data TemplateData) (string, error) {
	return renderText("subject", t.SubjectFormat, data)
}

// RenderPlainText renders the plain text email body
func (t *EmailTemplate) RenderPlainText(data TemplateData) (string, error) {
	return renderText("plaintext", t.PlainText, data)
}

// RenderHTML renders the HTML email body with file names and links escaped
func (t *EmailTemplate) RenderHTML(data TemplateData) (string, error) {
	tmpl, err := htmltemplate.New("html").Parse(t.HTML)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func renderText(name, tmplStr string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

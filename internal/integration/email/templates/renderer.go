// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer renders the embedded email templates.
// Every template name has an HTML and a plain text variant.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

// Render executes both variants of a template.
func (r *Renderer) Render(name string, data any) (html string, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer

	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// PasswordResetData contains data for the password reset email.
type PasswordResetData struct {
	AppName   string
	UserName  string
	Token     string
	ExpiresIn string
}

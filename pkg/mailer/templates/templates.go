package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"io"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Welcome is sent once after a successful signup.
const Welcome = "welcome"

// WelcomeData is the payload the welcome templates expect.
type WelcomeData struct {
	AppName  string `json:"AppName"`
	Email    string `json:"Email"`
	JoinedAt string `json:"JoinedAt"`
}

// ToMap flattens WelcomeData into EmailJob.Data.
func (d WelcomeData) ToMap() map[string]any {
	return map[string]any{
		"AppName":  d.AppName,
		"Email":    d.Email,
		"JoinedAt": d.JoinedAt,
	}
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

// Both sets are parsed once; a template is addressed by its file name.
var (
	textSet = texttpl.Must(texttpl.New("text").Funcs(baseFuncs()).Option("missingkey=zero").ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("html").Funcs(baseFuncs()).Option("missingkey=zero").ParseFS(FS, "*.html.tmpl"))
)

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, filename string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, filename, data); err != nil {
		return "", fmt.Errorf("render %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render produces subject, text and html for the template family name, read
// from <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = execute(textSet, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(textSet, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlSet, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}

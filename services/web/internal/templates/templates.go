// Package templates embeds the login and main page templates.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

const (
	LoginPage = "login.html"
	MainPage  = "index.html"
)

// Load parses every embedded page template.
func Load() (*template.Template, error) {
	return template.New("pages").ParseFS(files, "*.html")
}

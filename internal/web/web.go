// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"

	"cz4r/internal/dto"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"statusLabel": statusLabel,
	"join":        strings.Join,
}

// Templates parses every page. Each file is registered under its base
// name, e.g. "joblist.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}

func statusLabel(status string) string {
	switch status {
	case dto.StatusAssigned:
		return "Assigned"
	case dto.StatusStarted:
		return "Started"
	case dto.StatusSignedOut:
		return "Completed"
	case dto.StatusOutNotIn:
		return "Signed out, never signed in"
	case dto.StatusOrphan:
		return "No workers assigned"
	}
	return status
}

package visualization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/session"
)

type htmlTemplateData struct {
	SnapshotJSON template.JS
	HiddenNames  []string
	OutputNames  []string
}

// RenderHTML produces the interactive grid page with snap as its initial state.
// The page talks to the /api endpoints relative to its own origin.
func RenderHTML(snap session.Snapshot) ([]byte, error) {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	tmplBytes, err := templates.ReadFile("templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}

	tmpl, err := template.New("index").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	// json.HTMLEscape rewrites <, > and & so the snapshot cannot close the script tag.
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, snapJSON)

	var buf bytes.Buffer
	data := htmlTemplateData{
		SnapshotJSON: template.JS(escaped.String()), // #nosec G203
		HiddenNames:  constants.HiddenUnitNames[:],
		OutputNames:  constants.OutputUnitNames[:],
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}

	return buf.Bytes(), nil
}

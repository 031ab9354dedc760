// Package web serves the interactive slider page.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/matchviz/internal/sweep"
)

//go:embed templates/index.html
var templates embed.FS

var indexTmpl = template.Must(template.ParseFS(templates, "templates/index.html"))

type slider struct {
	ID    string
	Label string
	Unit  string
	Bound sweep.Bound
}

type pageData struct {
	Heading string
	Sliders []slider
}

// Handler returns an http.Handler rendering the slider page for the given limits.
func Handler(limits sweep.Limits) (http.Handler, error) {
	data := pageData{
		Heading: "Matching Network Visualizer",
		Sliders: []slider{
			{ID: "resistance", Label: "Target Resistance", Unit: "Ω", Bound: limits.ResistanceOhms},
			{ID: "reactance", Label: "Target Reactance", Unit: "Ω", Bound: limits.ReactanceOhms},
			{ID: "frequency_ghz", Label: "Frequency", Unit: "GHz", Bound: limits.FrequencyGHz},
		},
	}

	// the page never changes for a process, render it once
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(page); err != nil {
			log.Warn().Err(err).Msg("Failed to write index page")
		}
	}), nil
}

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/RMahshie/matchviz/internal/api/handlers"
)

// RegisterRoutes sets up all API routes. page, when non-nil, is served at "/".
func RegisterRoutes(router chi.Router, api huma.API, sweepHandler *handlers.SweepHandler, page http.Handler) {
	// Register sweep routes
	huma.Register(api, huma.Operation{
		OperationID: "getSweep",
		Method:      http.MethodGet,
		Path:        "/api/sweep",
		Summary:     "Compute a matching sweep",
		Description: "Returns the series capacitance and match error for every inductance sample",
		Tags:        []string{"Sweep"},
	}, sweepHandler.Sweep)

	huma.Register(api, huma.Operation{
		OperationID: "getSweepPlot",
		Method:      http.MethodGet,
		Path:        "/api/sweep/plot",
		Summary:     "Plot a matching sweep",
		Description: "Renders L against C as a scatter chart coloured by match error",
		Tags:        []string{"Sweep"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Rendered chart",
				Content: map[string]*huma.MediaType{
					"image/png":     {},
					"image/svg+xml": {},
				},
			},
		},
	}, sweepHandler.Plot)

	huma.Register(api, huma.Operation{
		OperationID: "getSweepExport",
		Method:      http.MethodGet,
		Path:        "/api/sweep/export",
		Summary:     "Export a matching sweep",
		Description: "Downloads the sweep as an XLSX workbook or a TSV file",
		Tags:        []string{"Sweep"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Exported sweep",
				Content: map[string]*huma.MediaType{
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
					"text/tab-separated-values": {},
				},
			},
		},
	}, sweepHandler.Export)

	if page != nil {
		router.Method(http.MethodGet, "/", page)
	}
}

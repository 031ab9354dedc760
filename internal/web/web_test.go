package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/matchviz/internal/sweep"
)

func TestHandler(t *testing.T) {
	h, err := Handler(sweep.DefaultLimits())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Matching Network Visualizer</h1>")
	assert.Contains(t, body, `id="resistance"`)
	assert.Contains(t, body, `id="reactance"`)
	assert.Contains(t, body, `id="frequency_ghz"`)
	assert.Contains(t, body, `min="-50"`)
	assert.Contains(t, body, `value="2.4"`)
	assert.Contains(t, body, "/api/sweep/plot?")
}

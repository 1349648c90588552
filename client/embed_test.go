package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ServesLiveScript(t *testing.T) {
	rec := httptest.NewRecorder()
	http.StripPrefix("/_live/", Handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_live/live.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), "data-live-root")
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
}

func TestMustGetFile(t *testing.T) {
	assert.NotEmpty(t, MustGetFile("live.js"))
	assert.Panics(t, func() { MustGetFile("missing.js") })
}

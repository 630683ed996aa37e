package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h := &Handler{Service: "dice-service"}
	http.HandlerFunc(h.HealthCheck).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "health returned wrong status code")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "dice-service", resp.Service)
}

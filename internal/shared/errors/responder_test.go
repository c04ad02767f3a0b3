package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errMissing = stderrors.New("missing")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/7", nil))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("https://couriersync.dev",
		Match(errMissing, ErrNotFound),
		Match(errMissing, ErrConflict),
	)
	rec, body := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("lookup: %w", errMissing))
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "https://couriersync.dev"+TypeNotFound, body.Type)
	require.Equal(t, "lookup: missing", body.Detail)
	require.Equal(t, "/things/7", body.Instance)
}

func TestChainedResponder_UnknownErrorsAreOpaque(t *testing.T) {
	responder := NewChainedResponder("")
	rec, body := serve(t, func(c *gin.Context) {
		responder.RespondError(c, stderrors.New("pq: connection refused"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, body.Detail, "pq")
}

func TestResponder_PassesProblemDetailsThrough(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		DefaultResponder.RespondError(c, ErrTooManyRequests.WithDetail("slow down"))
	})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "slow down", body.Detail)
}

func TestResponder_NotFound(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		DefaultResponder.NotFound(c, "shipment", 7)
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "shipment", body.Extensions["resourceType"])
}

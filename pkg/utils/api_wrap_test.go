package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrip/internal/models/request_models"
	"roadtrip/internal/models/route_models"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, nil, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"validation":  {err: &route_models.ValidationError{Kind: route_models.ErrNoDays, Detail: "no day keys"}, code: http.StatusUnprocessableEntity},
		"parse":       {err: route_models.NewMalformedPayloadError("x", errors.New("bad")), code: http.StatusUnprocessableEntity},
		"wrapped":     {err: fmt.Errorf("attempt 2: %w", &route_models.ValidationError{Kind: route_models.ErrInvalidStop}), code: http.StatusUnprocessableEntity},
		"preferences": {err: fmt.Errorf("%w: days", request_models.ErrInvalidPreferences), code: http.StatusBadRequest},
		"input":       {err: ErrInvalidInput, code: http.StatusBadRequest},
		"not found":   {err: ErrItineraryNotFound, code: http.StatusNotFound},
		"ai":          {err: fmt.Errorf("%w: gemini down", ErrUnexpectedBehaviorOfAI), code: http.StatusBadGateway},
		"other":       {err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w, body := serveError(t, tc.err)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestHandleServiceError_ValidationDetail(t *testing.T) {
	_, body := serveError(t, &route_models.ValidationError{Kind: route_models.ErrInvalidStop, Key: "day-2.stops[0]", Detail: "stop name is empty"})

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "invalid stop", data["kind"])
	assert.Equal(t, "day-2.stops[0]", data["key"])
}

func TestHandleServiceError_ParseErrorEchoesRaw(t *testing.T) {
	_, body := serveError(t, route_models.NewMalformedPayloadError("not json at all", errors.New("invalid character 'o'")))

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "malformed payload", data["kind"])
	assert.Equal(t, "not json at all", data["raw"])
}

func TestHandleServiceError_ParseErrorTruncatesLongRaw(t *testing.T) {
	raw := strings.Repeat("é", maxRawInError)
	_, body := serveError(t, route_models.NewMalformedPayloadError(raw, errors.New("bad")))

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	got, ok := data["raw"].(string)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxRawInError+len("…"))
	assert.True(t, strings.HasSuffix(got, "…"))
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roadtrip/internal/models/request_models"
	"roadtrip/internal/models/response_models"
	"roadtrip/internal/services"
	mem "roadtrip/pkg/memcache"
	"roadtrip/pkg/middleware"
	"roadtrip/pkg/utils"
)

type stubSource struct{ reply string }

func (s stubSource) GenerateItinerary(ctx context.Context, prefs request_models.TripPreferences) (string, error) {
	return s.reply, nil
}

func (s stubSource) Close() error { return nil }

const sampleItinerary = `{"start":{"name":"A"},"destination":{"name":"B"},"day-1":{"stops":[{"name":"C"}]},"day-2":{"stops":[{"name":"E"}]}}`

func newTestRouter(t *testing.T, source utils.ItinerarySource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := services.NewEngine(nil, time.Second, services.OrchestratorConfig{MaxConcurrentDays: 2}, zap.NewNop())
	planner := services.NewPlannerService(source, engine, mem.NewItineraries(), services.PlannerConfig{
		Attempts:     1,
		ItineraryTTL: time.Hour,
	}, zap.NewNop())

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	NewItineraryController(planner, zap.NewNop()).RegisterRoutes(r)
	return r
}

type envelope struct {
	Status  string                             `json:"status"`
	Code    int                                `json:"code"`
	Message string                             `json:"message"`
	TraceID string                             `json:"trace_id"`
	Data    *response_models.ItineraryResponse `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCreateAndFetchItinerary(t *testing.T) {
	r := newTestRouter(t, stubSource{reply: "```json\n" + sampleItinerary + "\n```"})

	w, env := do(t, r, http.MethodPost, "/api/itineraries", `{"days":2,"start_point":"A","destination_point":"B"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, env.Data)
	assert.NotEmpty(t, env.TraceID)
	assert.Len(t, env.Data.Days, 2)
	assert.Equal(t, "C", env.Data.Days[1].Origin.Name)

	w, fetched := do(t, r, http.MethodGet, "/api/itineraries/"+env.Data.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.Data.ID, fetched.Data.ID)
}

func TestCreateItinerary_BadPreferences(t *testing.T) {
	r := newTestRouter(t, stubSource{reply: sampleItinerary})

	w, env := do(t, r, http.MethodPost, "/api/itineraries", `{"days":0,"start_point":"A","destination_point":"B"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)

	w, _ = do(t, r, http.MethodPost, "/api/itineraries", `{"days":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItinerary_ModelReplyRejected(t *testing.T) {
	r := newTestRouter(t, stubSource{reply: "I can't help with that"})

	w, _ := do(t, r, http.MethodPost, "/api/itineraries", `{"days":1,"start_point":"A","destination_point":"B"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestParseItinerary(t *testing.T) {
	r := newTestRouter(t, nil)

	w, env := do(t, r, http.MethodPost, "/api/itineraries/parse", `{"raw":`+strconvQuote(sampleItinerary)+`,"optimize":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// no routing client configured: the single-stop days need no optimization
	assert.Empty(t, env.Data.Warnings)
	assert.Contains(t, env.Data.Days[0].NavigationURL, "destination=C")

	w, _ = do(t, r, http.MethodPost, "/api/itineraries/parse", `{"raw":"{\"destination\":{\"name\":\"B\"}}"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/itineraries/parse", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItinerary_Errors(t *testing.T) {
	r := newTestRouter(t, nil)

	w, _ := do(t, r, http.MethodGet, "/api/itineraries/nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/itineraries/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItinerary_NoModelConfigured(t *testing.T) {
	r := newTestRouter(t, nil)

	w, _ := do(t, r, http.MethodPost, "/api/itineraries", `{"days":1,"start_point":"A","destination_point":"B"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/models/request_models"
	"roadtrip/internal/services"
	"roadtrip/pkg/utils"
)

type ItineraryController struct {
	plannerService services.PlannerServiceInterface
	logger         *zap.Logger
}

func NewItineraryController(plannerService services.PlannerServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		plannerService: plannerService,
		logger:         logger,
	}
}

// CreateItinerary godoc
// @Summary Plan a road trip
// @Description Ask the itinerary model for a multi-day trip and resolve each day's route
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TripPreferences true "Trip preferences"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.TripPreferences
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	itinerary, err := i.plannerService.PlanTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, itinerary, "Itinerary planned successfully")
}

// ParseItinerary godoc
// @Summary Resolve an itinerary payload
// @Description Validate itinerary JSON produced elsewhere and resolve each day's route
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ParseItineraryRequest true "Raw itinerary"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /api/itineraries/parse [post]
func (i *ItineraryController) ParseItinerary(c *gin.Context) {
	var req request_models.ParseItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	itinerary, err := i.plannerService.ParseItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, itinerary, "Itinerary resolved successfully")
}

// GetItinerary godoc
// @Summary Get itinerary by ID
// @Description Fetch a previously planned itinerary while it is still cached
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/itineraries/{id} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	itinerary, err := i.plannerService.GetItinerary(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

func (i *ItineraryController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
}

func (i *ItineraryController) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", i.Health)

	group := r.Group("/api/itineraries")
	group.POST("", i.CreateItinerary)
	group.POST("/parse", i.ParseItinerary)
	group.GET("/:id", i.GetItinerary)
}

package api

import (
	"net/http"

	reqdto "foodbridge/internal/handler/dto/request"
	resdto "foodbridge/internal/handler/dto/response"
	"foodbridge/internal/handler/middleware"
	"foodbridge/internal/infra"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultOpenListingsLimit = 100

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
	statsQueries    queries.StatsQueries
	clock           clock.Clock
}

func NewListingHandler(
	listingCommands commands.ListingCommands,
	listingQueries queries.ListingQueries,
	statsQueries queries.StatsQueries,
	clk clock.Clock,
) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
		statsQueries:    statsQueries,
		clock:           clk,
	}
}

// @Summary Create listing
// @Description Publish a surplus food listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := commands.CreateListingInput{
		Title:          req.TrimmedTitle(),
		Description:    req.Description,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		AvailableUntil: req.AvailableUntil,
		SafeUntil:      req.SafeUntil,
	}

	result, err := h.listingCommands.Create(c.Request.Context(), input, providerID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromListingResult(result))
}

// @Summary Cancel listing
// @Description Cancel an own listing; pending claims are rejected
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /listings/{id} [delete]
func (h *ListingHandler) CancelListing(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	result, err := h.listingCommands.Cancel(c.Request.Context(), id, providerID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingResult(result))
}

// @Summary Get listing
// @Description Get a listing by ID
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary List open listings
// @Description Listings still claimable right now, soonest deadline first
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingResponse
// @Router /listings [get]
func (h *ListingHandler) ListOpenListings(c *gin.Context) {
	views, err := h.listingQueries.ListOpen(c.Request.Context(), h.clock.Now(), defaultOpenListingsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.ListingResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromListingView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List own listings
// @Description All listings of the authenticated provider
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingResponse
// @Failure 401 {object} map[string]string
// @Router /listings/mine [get]
func (h *ListingHandler) ListMyListings(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.listingQueries.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.ListingResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromListingView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Provider stats
// @Description Reconciliation dashboard for the authenticated provider
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProviderStatsResponse
// @Failure 401 {object} map[string]string
// @Router /listings/stats [get]
func (h *ListingHandler) GetProviderStats(c *gin.Context) {
	providerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	stats, err := h.statsQueries.GetProviderStats(c.Request.Context(), providerID, h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromProviderStats(stats))
}

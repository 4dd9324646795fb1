package api

import (
	"net/http"

	reqdto "foodbridge/internal/handler/dto/request"
	resdto "foodbridge/internal/handler/dto/response"
	"foodbridge/internal/handler/middleware"
	"foodbridge/internal/infra"
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClaimHandler struct {
	claimCommands commands.ClaimCommands
	claimQueries  queries.ClaimQueries
}

func NewClaimHandler(claimCommands commands.ClaimCommands, claimQueries queries.ClaimQueries) *ClaimHandler {
	return &ClaimHandler{
		claimCommands: claimCommands,
		claimQueries:  claimQueries,
	}
}

// @Summary Create claim
// @Description Request a share of a listed quantity
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClaimRequest true "Claim request"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims [post]
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	receiverID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := commands.CreateClaimInput{
		ListingID:    req.ListingID,
		RequestedQty: req.Quantity,
		Note:         req.Note,
	}

	result, err := h.claimCommands.Create(c.Request.Context(), input, receiverID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromClaimResult(result))
}

// @Summary Approve claim
// @Description Approve a pending claim, optionally for a reduced quantity
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.ApproveClaimRequest false "Approval request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims/{id}/approve [post]
func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	providerID, claimID, ok := h.actorAndClaim(c)
	if !ok {
		return
	}

	var req reqdto.ApproveClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.claimCommands.Approve(c.Request.Context(), claimID, providerID, req.Quantity)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Reject claim
// @Description Reject a pending claim
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.RejectClaimRequest false "Rejection request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims/{id}/reject [post]
func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	providerID, claimID, ok := h.actorAndClaim(c)
	if !ok {
		return
	}

	var req reqdto.RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.claimCommands.Reject(c.Request.Context(), claimID, providerID, req.Reason)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Confirm pickup
// @Description Verify the receiver's pickup code at handover
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.ConfirmPickupRequest true "Pickup confirmation"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims/{id}/confirm [post]
func (h *ClaimHandler) ConfirmPickup(c *gin.Context) {
	providerID, claimID, ok := h.actorAndClaim(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.claimCommands.ConfirmPickup(c.Request.Context(), claimID, providerID, req.PickupCode)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Complete delivery
// @Description Close out a confirmed claim, optionally leaving feedback
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.CompleteDeliveryRequest false "Completion request"
// @Success 200 {object} resdto.CompleteDeliveryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims/{id}/complete [post]
func (h *ClaimHandler) CompleteDelivery(c *gin.Context) {
	actorID, claimID, ok := h.actorAndClaim(c)
	if !ok {
		return
	}

	var req reqdto.CompleteDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var fb *commands.FeedbackInput
	if req.Feedback != nil {
		fb = &commands.FeedbackInput{
			Rating:      req.Feedback.Rating,
			FoodQuality: req.Feedback.FoodQuality,
			Experience:  req.Feedback.Experience,
			Comment:     req.Feedback.Comment,
		}
	}

	result, err := h.claimCommands.CompleteDelivery(c.Request.Context(), claimID, actorID, fb)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCompleteDelivery(result))
}

// @Summary Cancel claim
// @Description Cancel an own claim before completion
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.CancelClaimRequest true "Cancellation request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claims/{id}/cancel [post]
func (h *ClaimHandler) CancelClaim(c *gin.Context) {
	actorID, claimID, ok := h.actorAndClaim(c)
	if !ok {
		return
	}

	var req reqdto.CancelClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.claimCommands.Cancel(c.Request.Context(), claimID, actorID, req.Reason)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Get my claims
// @Description All claims of the authenticated receiver
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ClaimListResponse
// @Failure 401 {object} map[string]string
// @Router /claims [get]
func (h *ClaimHandler) ListMyClaims(c *gin.Context) {
	receiverID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.claimQueries.ListByReceiver(c.Request.Context(), receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.ClaimListResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromClaimView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get claim
// @Description Get a claim by ID; only the receiver or the listing provider may view it
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} resdto.ClaimListResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim ID format"})
		return
	}

	view, err := h.claimQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimView(view))
}

func (h *ClaimHandler) actorAndClaim(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim ID format"})
		return uuid.Nil, uuid.Nil, false
	}

	return actorID, claimID, true
}

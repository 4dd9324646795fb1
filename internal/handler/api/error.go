package api

import (
	"errors"
	"net/http"

	"foodbridge/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondCommandError maps usecase sentinels onto HTTP statuses. Anything
// unrecognized is a 500 so storage details never leak to clients.
func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, commands.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed for this resource"})
	case errors.Is(err, commands.ErrListingNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Listing is not open for claims"})
	case errors.Is(err, commands.ErrInsufficientQuantity):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient remaining quantity"})
	case errors.Is(err, commands.ErrWrongState):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not allowed in current state"})
	case errors.Is(err, commands.ErrListingHasActiveClaims):
		c.JSON(http.StatusConflict, gin.H{"error": "Listing has approved or confirmed claims"})
	case errors.Is(err, commands.ErrInvalidPickupCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup code"})
	case errors.Is(err, commands.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating"})
	case errors.Is(err, commands.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
	case errors.Is(err, commands.ErrMissingReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Domain validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

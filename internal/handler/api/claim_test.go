//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodbridge/internal/domain/claim"
	"foodbridge/internal/domain/user"
	"foodbridge/internal/handler/api"
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubClaimCommands returns canned values; each test arms exactly the
// operation it exercises.
type stubClaimCommands struct {
	result *commands.ClaimResult
	comp   *commands.CompleteDeliveryResult
	err    error
}

func (s *stubClaimCommands) Create(context.Context, commands.CreateClaimInput, uuid.UUID) (*commands.ClaimResult, error) {
	return s.result, s.err
}

func (s *stubClaimCommands) Approve(context.Context, uuid.UUID, uuid.UUID, *float64) (*commands.ClaimResult, error) {
	return s.result, s.err
}

func (s *stubClaimCommands) Reject(context.Context, uuid.UUID, uuid.UUID, string) (*commands.ClaimResult, error) {
	return s.result, s.err
}

func (s *stubClaimCommands) ConfirmPickup(context.Context, uuid.UUID, uuid.UUID, string) (*commands.ClaimResult, error) {
	return s.result, s.err
}

func (s *stubClaimCommands) CompleteDelivery(context.Context, uuid.UUID, uuid.UUID, *commands.FeedbackInput) (*commands.CompleteDeliveryResult, error) {
	return s.comp, s.err
}

func (s *stubClaimCommands) Cancel(context.Context, uuid.UUID, uuid.UUID, string) (*commands.ClaimResult, error) {
	return s.result, s.err
}

type stubClaimQueries struct {
	view  *queries.ClaimView
	views []*queries.ClaimView
	err   error
}

func (s *stubClaimQueries) GetByID(context.Context, uuid.UUID) (*queries.ClaimView, error) {
	return s.view, s.err
}

func (s *stubClaimQueries) ListByReceiver(context.Context, uuid.UUID) ([]*queries.ClaimView, error) {
	return s.views, s.err
}

func (s *stubClaimQueries) ListByListing(context.Context, uuid.UUID) ([]*queries.ClaimView, error) {
	return s.views, s.err
}

type ClaimHandlerTestSuite struct {
	suite.Suite
	commands *stubClaimCommands
	queries  *stubClaimQueries
	router   *gin.Engine
}

func (s *ClaimHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.commands = &stubClaimCommands{}
	s.queries = &stubClaimQueries{}
	handler := api.NewClaimHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleReceiver)
		c.Next()
	}

	s.router = gin.New()
	s.router.POST("/claims", authMiddleware, handler.CreateClaim)
	s.router.POST("/claims/:id/approve", authMiddleware, handler.ApproveClaim)
	s.router.POST("/claims/:id/confirm", authMiddleware, handler.ConfirmPickup)
	s.router.POST("/claims/:id/cancel", authMiddleware, handler.CancelClaim)
	s.router.GET("/claims/:id", authMiddleware, handler.GetClaim)
}

func (s *ClaimHandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ClaimHandlerTestSuite) TestCreateClaim() {
	s.Run("created", func() {
		s.commands.err = nil
		s.commands.result = &commands.ClaimResult{
			ID:           uuid.New(),
			ListingID:    uuid.New(),
			ReceiverID:   uuid.New(),
			RequestedQty: 2,
			Status:       claim.StatusPending,
		}

		w := s.do(http.MethodPost, "/claims", `{"listing_id":"`+uuid.NewString()+`","quantity":2}`)
		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), `"pending"`)
	})

	s.Run("missing quantity is a bad request", func() {
		w := s.do(http.MethodPost, "/claims", `{"listing_id":"`+uuid.NewString()+`"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unauthenticated", func() {
		req := httptest.NewRequest(http.MethodPost, "/claims", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *ClaimHandlerTestSuite) TestErrorMapping() {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"listing not found", commands.ErrListingNotFound, http.StatusNotFound},
		{"claim not found", commands.ErrClaimNotFound, http.StatusNotFound},
		{"forbidden", commands.ErrForbidden, http.StatusForbidden},
		{"not available", commands.ErrListingNotAvailable, http.StatusConflict},
		{"insufficient quantity", commands.ErrInsufficientQuantity, http.StatusConflict},
		{"wrong state", commands.ErrWrongState, http.StatusConflict},
		{"invalid pickup code", commands.ErrInvalidPickupCode, http.StatusBadRequest},
		{"storage failure", commands.ErrStorageFailure, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.commands.result = nil
			s.commands.err = tc.err

			w := s.do(http.MethodPost, "/claims", `{"listing_id":"`+uuid.NewString()+`","quantity":1}`)
			s.Equal(tc.want, w.Code)
		})
	}
}

func (s *ClaimHandlerTestSuite) TestConfirmPickup() {
	s.Run("requires a pickup code", func() {
		w := s.do(http.MethodPost, "/claims/"+uuid.NewString()+"/confirm", `{}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("invalid claim id", func() {
		w := s.do(http.MethodPost, "/claims/not-a-uuid/confirm", `{"pickup_code":"CODE1234"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("confirms", func() {
		s.commands.err = nil
		s.commands.result = &commands.ClaimResult{ID: uuid.New(), Status: claim.StatusConfirmed}

		w := s.do(http.MethodPost, "/claims/"+uuid.NewString()+"/confirm", `{"pickup_code":"CODE1234"}`)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"confirmed"`)
	})
}

func (s *ClaimHandlerTestSuite) TestCancelClaim() {
	s.Run("reason is required by binding", func() {
		w := s.do(http.MethodPost, "/claims/"+uuid.NewString()+"/cancel", `{}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestClaimHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}

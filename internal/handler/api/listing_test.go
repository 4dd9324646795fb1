//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodbridge/internal/domain/listing"
	"foodbridge/internal/domain/user"
	"foodbridge/internal/handler/api"
	"foodbridge/internal/infra"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/usecase/commands"
	"foodbridge/internal/usecase/queries"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubListingCommands struct {
	result *commands.ListingResult
	err    error
}

func (s *stubListingCommands) Create(context.Context, commands.CreateListingInput, uuid.UUID) (*commands.ListingResult, error) {
	return s.result, s.err
}

func (s *stubListingCommands) Cancel(context.Context, uuid.UUID, uuid.UUID) (*commands.ListingResult, error) {
	return s.result, s.err
}

type stubListingQueries struct {
	view  *queries.ListingView
	views []*queries.ListingView
	err   error
}

func (s *stubListingQueries) GetByID(context.Context, uuid.UUID) (*queries.ListingView, error) {
	return s.view, s.err
}

func (s *stubListingQueries) ListOpen(context.Context, time.Time, int32) ([]*queries.ListingView, error) {
	return s.views, s.err
}

func (s *stubListingQueries) ListByProvider(context.Context, uuid.UUID) ([]*queries.ListingView, error) {
	return s.views, s.err
}

type stubStatsQueries struct {
	stats *queries.ProviderStats
	err   error
}

func (s *stubStatsQueries) GetProviderStats(context.Context, uuid.UUID, time.Time) (*queries.ProviderStats, error) {
	return s.stats, s.err
}

type ListingHandlerTestSuite struct {
	suite.Suite
	commands *stubListingCommands
	queries  *stubListingQueries
	stats    *stubStatsQueries
	router   *gin.Engine
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.commands = &stubListingCommands{}
	s.queries = &stubListingQueries{}
	s.stats = &stubStatsQueries{}

	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	handler := api.NewListingHandler(s.commands, s.queries, s.stats, clk)

	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleProvider)
		c.Next()
	}

	s.router = gin.New()
	s.router.GET("/listings", handler.ListOpenListings)
	s.router.GET("/listings/stats", authMiddleware, handler.GetProviderStats)
	s.router.GET("/listings/:id", handler.GetListing)
	s.router.POST("/listings", authMiddleware, handler.CreateListing)
	s.router.DELETE("/listings/:id", authMiddleware, handler.CancelListing)
}

func (s *ListingHandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ListingHandlerTestSuite) TestCreateListing() {
	s.Run("created", func() {
		s.commands.err = nil
		s.commands.result = &commands.ListingResult{
			ID:            uuid.New(),
			Title:         "Chicken breast trays",
			TotalQuantity: 10,
			Unit:          "kg",
			Status:        listing.StatusAvailable,
		}

		body := `{"title":"Chicken breast trays","quantity":10,"unit":"kg",` +
			`"available_until":"2025-06-01T20:00:00Z","safe_until":"2025-06-01T18:00:00Z"}`
		w := s.do(http.MethodPost, "/listings", body)
		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), `"available"`)
	})

	s.Run("missing title is a bad request", func() {
		w := s.do(http.MethodPost, "/listings", `{"quantity":10,"unit":"kg"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("domain validation is unprocessable", func() {
		s.commands.result = nil
		s.commands.err = commands.ErrDomainValidation

		body := `{"title":"x","quantity":10,"unit":"kg",` +
			`"available_until":"2025-06-01T20:00:00Z","safe_until":"2025-06-01T21:00:00Z"}`
		w := s.do(http.MethodPost, "/listings", body)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestGetListing() {
	s.Run("found", func() {
		s.queries.err = nil
		s.queries.view = &queries.ListingView{
			ID:            uuid.New(),
			Title:         "Chicken breast trays",
			TotalQuantity: 10,
			RemainingQty:  4,
			Status:        "partially_claimed",
		}

		w := s.do(http.MethodGet, "/listings/"+uuid.NewString(), "")
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"partially_claimed"`)
	})

	s.Run("not found", func() {
		s.queries.view = nil
		s.queries.err = infra.WrapRepoErr("listing not found", errors.New("no rows"), infra.KindNotFound)

		w := s.do(http.MethodGet, "/listings/"+uuid.NewString(), "")
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("bad id", func() {
		w := s.do(http.MethodGet, "/listings/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestCancelListing() {
	s.Run("active claims block cancellation", func() {
		s.commands.result = nil
		s.commands.err = commands.ErrListingHasActiveClaims

		w := s.do(http.MethodDelete, "/listings/"+uuid.NewString(), "")
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("not the owner", func() {
		s.commands.result = nil
		s.commands.err = commands.ErrForbidden

		w := s.do(http.MethodDelete, "/listings/"+uuid.NewString(), "")
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestGetProviderStats() {
	s.stats.err = nil
	s.stats.stats = &queries.ProviderStats{
		TotalListings:  3,
		ActiveListings: 1,
		TotalClaimed:   12,
		TotalWasted:    4,
		WasteRate:      0.25,
		Impact: queries.ImpactTotals{
			CO2Kg:        13.8,
			WaterLiters:  8650,
			PeopleServed: 8,
			Deliveries:   1,
		},
	}

	w := s.do(http.MethodGet, "/listings/stats", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"wasteRate":0.25`)
}

func TestListingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"fitbook/internal/domain/member"
	"fitbook/internal/handler/api"
	resdto "fitbook/internal/handler/dto/response"
	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/queries"
	"fitbook/tests/common/httptest"
	commandsmock "fitbook/tests/mock/commands"
	queriesmock "fitbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockSeries   *commandsmock.MockSeriesCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	memberID     uuid.UUID
	role         member.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockSeries = commandsmock.NewMockSeriesCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockSeries, s.mockQueries)

	s.memberID = uuid.New()
	s.role = member.RoleMember

	// Mock middleware behavior: inject the authenticated member.
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("member_id", s.memberID)
			c.Set("member_role", s.role)
			h(c)
		}
	}

	s.router.POST("/bookings", authed(s.handler.Claim))
	s.router.POST("/bookings/recurring", authed(s.handler.ClaimRecurring))
	s.router.POST("/bookings/:id/cancel", authed(s.handler.Cancel))
	s.router.GET("/bookings/:id", authed(s.handler.GetBooking))
	s.router.GET("/bookings", authed(s.handler.GetMemberBookings))
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func claimBody() map[string]any {
	return map[string]any{
		"target_kind":      "trainer",
		"target_id":        uuid.New().String(),
		"date":             "2026-03-02",
		"start_minute":     540,
		"duration_minutes": 60,
		"payment_mode":     "credit",
	}
}

func (s *BookingHandlerTestSuite) TestClaim() {
	url := "/bookings"

	s.Run("success: 201 Created with booking body", func() {
		view := &queries.BookingView{ID: uuid.New(), Status: "confirmed", Date: "2026-03-02"}
		s.mockCommands.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, claimBody(), "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("confirmed", resp.Status)
	})

	s.Run("error: 409 Conflict when slot taken", func() {
		s.mockCommands.EXPECT().Claim(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrSlotUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, claimBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not available")
	})

	s.Run("error: 402 Payment Required when out of credits", func() {
		s.mockCommands.EXPECT().Claim(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInsufficientCredit).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, claimBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "credit")
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		body := claimBody()
		body["payment_mode"] = "bitcoin"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request on bad date", func() {
		body := claimBody()
		body["date"] = "03/02/2026"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestClaimRecurring() {
	url := "/bookings/recurring"

	body := map[string]any{
		"trainer_id":       uuid.New().String(),
		"day_of_week":      3,
		"start_minute":     540,
		"duration_minutes": 60,
		"week_count":       4,
		"payment_mode":     "credit",
	}

	s.Run("success: 201 with created and skipped weeks", func() {
		result := &commands.SeriesResult{
			Created: []*queries.BookingView{
				{ID: uuid.New(), Date: "2026-03-04", Status: "confirmed"},
				{ID: uuid.New(), Date: "2026-03-11", Status: "confirmed"},
			},
			Skipped: []commands.SkippedOccurrence{
				{Date: "2026-03-18", Reason: commands.SkipSlotUnavailable},
			},
		}
		s.mockSeries.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var resp resdto.SeriesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Len(resp.Created, 2)
		s.Len(resp.Skipped, 1)
		s.Equal("slot_unavailable", resp.Skipped[0].Reason)
	})

	s.Run("error: 400 on invalid series", func() {
		s.mockSeries.EXPECT().Generate(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidSeries).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when booking does not exist", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID).
			Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 400 on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: member reads own booking", func() {
		view := &queries.BookingView{ID: bookingID, MemberID: &s.memberID, Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(bookingID, resp.ID)
	})

	s.Run("error: 403 when member reads someone else's booking", func() {
		otherID := uuid.New()
		view := &queries.BookingView{ID: bookingID, MemberID: &otherID, Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("success: admin reads any booking", func() {
		s.role = member.RoleAdmin
		defer func() { s.role = member.RoleMember }()

		otherID := uuid.New()
		view := &queries.BookingView{ID: bookingID, MemberID: &otherID, Status: "confirmed"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGetMemberBookings() {
	s.Run("success: returns list", func() {
		items := []*queries.BookingListItem{
			{ID: uuid.New(), Date: "2026-03-02", Status: "confirmed"},
			{ID: uuid.New(), Date: "2026-03-09", Status: "canceled"},
		}
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.memberID).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var resp []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
	})
}

//go:build e2e

package reservation_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"qr-seat-reservation/internal/domain/user"
	reqdto "qr-seat-reservation/internal/handler/dto/request"
	resdto "qr-seat-reservation/internal/handler/dto/response"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/tests/common/authtest"
	"qr-seat-reservation/tests/common/builder"
	"qr-seat-reservation/tests/common/httptest"
	"qr-seat-reservation/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type reservationSuite struct {
	e2e.SharedSuite
	adminToken    string
	entranceToken string
	table         queries.TableView
	seller        queries.SellerView
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin", string(user.RoleAdmin))
	s.entranceToken = authtest.CreateAndLogin(t, s.DB, s.Router, "entrance", string(user.RoleEntrance))

	tableReq := builder.NewTableBuilder().With(func(b *builder.TableBuilder) {
		b.AvailableSeats = 3
		b.UnavailableSeats = 1
	}).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/tables", tableReq, s.adminToken)
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &s.table)
	require.Len(t, s.table.Seats, 4)

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/sellers",
		reqdto.CreateSellerRequest{Name: "Front Desk"}, s.adminToken)
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &s.seller)

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/tickets/generate",
		reqdto.GenerateTicketsRequest{Count: 5}, s.adminToken)
	var gen resdto.GenerateTicketsResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &gen)
	require.Equal(t, 5, gen.Generated)
}

func (s *reservationSuite) reserve(seatIDs ...uuid.UUID) *nethttptest.ResponseRecorder {
	req := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.SellerID = s.seller.ID
		b.SeatIDs = seatIDs
	}).BuildCreateRequestDTO()
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", req, s.adminToken)
}

func (s *reservationSuite) TestLifecycle() {
	s.Run("予約から入場まで", func() {
		t := s.T()

		w := s.reserve(s.table.Seats[0].ID, s.table.Seats[1].ID)
		var res queries.ReservationView
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, "PAYMENT_PENDING", res.Status)
		require.Len(t, res.Allocations, 2)
		code := res.Allocations[0].TicketCode

		// 支払い前の入場は拒否
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/checkins",
			reqdto.CheckInRequest{Code: code}, s.entranceToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/reservations/"+res.ID.String()+"/payment", nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, "PAID", res.Status)

		var checkIn resdto.CheckInResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/checkins",
			reqdto.CheckInRequest{Code: code}, s.entranceToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &checkIn)
		require.Equal(t, "CHECKED_IN", checkIn.Outcome)

		// 二度目のスキャンは冪等
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/checkins",
			reqdto.CheckInRequest{Code: code}, s.entranceToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &checkIn)
		require.Equal(t, "ALREADY_CHECKED_IN", checkIn.Outcome)

		var table queries.TableView
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/tables/"+s.table.ID.String(), nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &table)
		require.Equal(t, 1, table.Counts.Available)
		require.Equal(t, 2, table.Counts.Occupied)

		// チケットZIPのダウンロード
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/reservations/"+res.ID.String()+"/tickets", nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		require.Len(t, zr.File, 2)
	})

	s.Run("キャンセルで座席が解放される", func() {
		t := s.T()

		w := s.reserve(s.table.Seats[2].ID)
		var res queries.ReservationView
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/reservations/"+res.ID.String(), nil, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		var stats queries.TicketStatsView
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/tickets/stats", nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
		require.Equal(t, 1, stats.Used, "キャンセルしてもチケットはプールに戻らない")

		// 解放された座席は再予約できる
		w = s.reserve(s.table.Seats[2].ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func (s *reservationSuite) TestAllOrNothing() {
	s.Run("利用不可の座席を含む予約は何も変更しない", func() {
		t := s.T()

		unavailable := s.table.Seats[3].ID
		w := s.reserve(s.table.Seats[0].ID, unavailable)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")

		var table queries.TableView
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/tables/"+s.table.ID.String(), nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &table)
		require.Equal(t, 3, table.Counts.Available)

		var stats queries.TicketStatsView
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/tickets/stats", nil, s.adminToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
		require.Equal(t, 0, stats.Used)
	})
}

func (s *reservationSuite) TestConcurrentReserve() {
	s.Run("同じ座席の同時予約は一件だけ成功する", func() {
		t := s.T()

		seat := s.table.Seats[0].ID
		const n = 4
		codes := make([]int, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = s.reserve(seat).Code
			}()
		}
		wg.Wait()

		created := 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				t.Fatalf("unexpected status %d", c)
			}
		}
		require.Equal(t, 1, created)
	})
}

func (s *reservationSuite) TestDeleteGuards() {
	s.Run("予約のあるテーブルと販売者は削除できない", func() {
		t := s.T()

		w := s.reserve(s.table.Seats[0].ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/tables/"+s.table.ID.String(), nil, s.adminToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/sellers/"+s.seller.ID.String(), nil, s.adminToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})
}

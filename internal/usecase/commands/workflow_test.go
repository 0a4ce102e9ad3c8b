//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/reservation"
	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra/memstore"
	"qr-seat-reservation/internal/infra/uow"
	"qr-seat-reservation/internal/pkg/clock"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ []byte, code string, _ setting.RenderGeometry) ([]byte, error) {
	return []byte("png:" + code), nil
}

// stubArchiver joins the codes instead of zipping.
type stubArchiver struct{}

func (stubArchiver) Archive(images []shared.TicketImage, _ time.Time) ([]byte, error) {
	codes := make([]string, 0, len(images))
	for _, img := range images {
		codes = append(codes, img.Code+"="+string(img.Image))
	}
	return []byte(strings.Join(codes, ",")), nil
}

func (stubArchiver) FileName(sellerName, tableName string, count int) string {
	return fmt.Sprintf("%s|%s|%d", sellerName, tableName, count)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// counterSource hands out 1, 2, 3... so codes come out in a known order.
func counterSource() ticket.Source {
	var n atomic.Int64
	return func(space int64) int64 {
		return n.Add(1) % space
	}
}

type WorkflowTestSuite struct {
	suite.Suite
	ctx       context.Context
	publisher *recordingPublisher

	seating      commands.SeatingCommands
	sellers      commands.SellerCommands
	tickets      commands.TicketCommands
	reservations commands.ReservationCommands
	settings     commands.SettingCommands

	seatingQ     queries.SeatingQueries
	ticketQ      queries.TicketQueries
	reservationQ queries.ReservationQueries

	tableID  uuid.UUID
	seats    []queries.SeatView
	sellerID uuid.UUID
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}

func (s *WorkflowTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.publisher = &recordingPublisher{}

	u := uow.NewMemoryUoW(memstore.New())
	clk := clock.NewMockClock(time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))

	s.seatingQ = queries.NewSeatingQueries(u)
	s.ticketQ = queries.NewTicketQueries(u)
	s.reservationQ = queries.NewReservationQueries(u, stubArchiver{})

	s.seating = commands.NewSeatingCommands(u, s.seatingQ, clk)
	s.sellers = commands.NewSellerCommands(u, queries.NewSellerQueries(u), clk)
	s.tickets = commands.NewTicketCommands(u, stubRenderer{}, counterSource(), clk)
	s.reservations = commands.NewReservationCommands(u, s.reservationQ, s.publisher, clk)
	s.settings = commands.NewSettingCommands(u, queries.NewSettingQueries(u), clk)

	table, err := s.seating.CreateTable(s.ctx, commands.CreateTableParams{Name: "T1", AvailableSeats: 3, UnavailableSeats: 1})
	s.Require().NoError(err)
	s.tableID = table.ID
	s.seats = table.Seats
	s.Require().Len(s.seats, 4)

	seller, err := s.sellers.Create(s.ctx, commands.CreateSellerParams{Name: "Kiosk A"})
	s.Require().NoError(err)
	s.sellerID = seller.ID

	format, err := ticket.NewCodeFormat("TK", 4)
	s.Require().NoError(err)
	gen, err := s.tickets.Generate(s.ctx, commands.GenerateParams{
		Count:     5,
		Format:    format,
		Geometry:  setting.RenderGeometry{FontSize: 12},
		BaseImage: []byte("base"),
	})
	s.Require().NoError(err)
	s.Require().Equal([]string{"TK0001", "TK0002", "TK0003", "TK0004", "TK0005"}, gen.Codes)
}

func (s *WorkflowTestSuite) reserve(seatIDs ...uuid.UUID) (*queries.ReservationView, error) {
	reqs := make([]commands.SeatRequest, 0, len(seatIDs))
	for _, id := range seatIDs {
		reqs = append(reqs, commands.SeatRequest{SeatID: id})
	}
	return s.reservations.Create(s.ctx, commands.CreateReservationParams{
		SellerID: s.sellerID,
		Seats:    reqs,
		Actor:    "admin",
	})
}

func (s *WorkflowTestSuite) seatStatus(id uuid.UUID) string {
	seat, err := s.seatingQ.GetSeat(s.ctx, id)
	s.Require().NoError(err)
	return seat.Status
}

func (s *WorkflowTestSuite) ticketStats() queries.TicketStatsView {
	stats, err := s.ticketQ.Stats(s.ctx)
	s.Require().NoError(err)
	return *stats
}

func (s *WorkflowTestSuite) TestCreate() {
	s.Run("座席ごとにチケットを割り当てる", func() {
		view, err := s.reserve(s.seats[0].ID, s.seats[1].ID)
		s.Require().NoError(err)

		s.Equal(reservation.StatusPaymentPending.String(), view.Status)
		s.Equal(2, view.SeatCount)
		codes := []string{}
		for _, a := range view.Allocations {
			codes = append(codes, a.TicketCode)
			s.Equal("T1", a.TableName)
			s.Equal(reservation.TicketClassFull.String(), a.Class)
		}
		s.ElementsMatch([]string{"TK0001", "TK0002"}, codes)

		s.Equal(seating.SeatReserved.String(), s.seatStatus(s.seats[0].ID))
		s.Equal(seating.SeatReserved.String(), s.seatStatus(s.seats[1].ID))
		s.Equal(queries.TicketStatsView{Available: 3, Used: 2, Total: 5}, s.ticketStats())
		s.Equal([]shared.EventType{shared.EventReservationCreated}, s.publisher.types())
	})

	s.Run("一部の座席が使えなければ何も変えない", func() {
		_, err := s.reserve(s.seats[2].ID, s.seats[3].ID)
		s.True(errs.Is(err, errs.ErrSeatUnavailable), err)

		s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[2].ID))
		s.Equal(seating.SeatUnavailable.String(), s.seatStatus(s.seats[3].ID))
		s.Equal(3, s.ticketStats().Available)
	})

	s.Run("予約済み座席はSeatUnavailable", func() {
		_, err := s.reserve(s.seats[0].ID)
		s.True(errs.Is(err, errs.ErrSeatUnavailable), err)
	})

	s.Run("存在しない座席はSeatNotFound", func() {
		_, err := s.reserve(uuid.New())
		s.True(errs.Is(err, errs.ErrSeatNotFound), err)
	})

	s.Run("座席の重複指定は検証エラー", func() {
		_, err := s.reserve(s.seats[2].ID, s.seats[2].ID)
		s.True(errs.Is(err, errs.ErrValidation), err)
	})

	s.Run("存在しない販売者はSellerNotFound", func() {
		_, err := s.reservations.Create(s.ctx, commands.CreateReservationParams{
			SellerID: uuid.New(),
			Seats:    []commands.SeatRequest{{SeatID: s.seats[2].ID}},
		})
		s.True(errs.Is(err, errs.ErrSellerNotFound), err)
	})
}

func (s *WorkflowTestSuite) TestCreate_PoolExhausted() {
	for range 4 {
		_, err := s.tickets.AllocateOne(s.ctx)
		s.Require().NoError(err)
	}

	_, err := s.reserve(s.seats[0].ID, s.seats[1].ID)
	s.True(errs.Is(err, errs.ErrTicketPoolExhausted), err)

	s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[0].ID))
	s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[1].ID))
	s.Equal(1, s.ticketStats().Available)

	_, err = s.tickets.AllocateOne(s.ctx)
	s.Require().NoError(err)
	_, err = s.tickets.AllocateOne(s.ctx)
	s.True(errs.Is(err, errs.ErrTicketPoolExhausted), err)
}

func (s *WorkflowTestSuite) TestPaymentAndCheckIn() {
	view, err := s.reserve(s.seats[0].ID)
	s.Require().NoError(err)
	code := view.Allocations[0].TicketCode

	s.Run("未払いはNotPaid", func() {
		_, err := s.reservations.CheckInByCode(s.ctx, code, "gate")
		s.True(errs.Is(err, errs.ErrNotPaid), err)
		s.Equal(seating.SeatReserved.String(), s.seatStatus(s.seats[0].ID))
	})

	s.Run("支払いは冪等", func() {
		paid, err := s.reservations.MarkPaid(s.ctx, view.ID, "cashier")
		s.Require().NoError(err)
		s.Equal(reservation.StatusPaid.String(), paid.Status)

		_, err = s.reservations.MarkPaid(s.ctx, view.ID, "cashier")
		s.Require().NoError(err)
		s.Equal([]shared.EventType{shared.EventReservationCreated, shared.EventReservationPaid}, s.publisher.types())
	})

	s.Run("チェックイン", func() {
		result, err := s.reservations.CheckInByCode(s.ctx, " "+code+" ", "gate")
		s.Require().NoError(err)
		s.Equal(reservation.CheckInOutcomeCheckedIn, result.Outcome)
		s.Equal(view.ReferenceNo, result.ReferenceNo)
		s.Equal(s.seats[0].ID, result.SeatID)
		s.Equal(seating.SeatCheckedIn.String(), s.seatStatus(s.seats[0].ID))

		got, err := s.reservationQ.GetByID(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusPaid.String(), got.Status)
		s.Equal(reservation.StatusCheckedIn.String(), got.Allocations[0].Status)
	})

	s.Run("二回目はALREADY_CHECKED_IN", func() {
		result, err := s.reservations.CheckInByCode(s.ctx, code, "gate")
		s.Require().NoError(err)
		s.Equal(reservation.CheckInOutcomeAlreadyCheckedIn, result.Outcome)
		s.Len(s.publisher.types(), 3, "a repeated scan publishes nothing")
	})

	s.Run("未割り当てのコードはReservationNotFound", func() {
		_, err := s.reservations.CheckInByCode(s.ctx, "TK0005", "gate")
		s.True(errs.Is(err, errs.ErrReservationNotFound), err)
	})

	s.Run("空のコードは検証エラー", func() {
		_, err := s.reservations.CheckInByCode(s.ctx, "  ", "gate")
		s.True(errs.Is(err, errs.ErrValidation), err)
	})
}

func (s *WorkflowTestSuite) TestExportTickets() {
	view, err := s.reserve(s.seats[0].ID, s.seats[1].ID)
	s.Require().NoError(err)

	s.Run("割り当て済みチケットの画像をまとめる", func() {
		got, err := s.reservationQ.ExportTickets(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal("Kiosk A|T1|2", got.FileName)
		s.ElementsMatch([]string{"TK0001=png:TK0001", "TK0002=png:TK0002"}, strings.Split(string(got.Content), ","))
	})

	s.Run("存在しない予約はReservationNotFound", func() {
		_, err := s.reservationQ.ExportTickets(s.ctx, uuid.New())
		s.True(errs.Is(err, errs.ErrReservationNotFound), err)
	})
}

func (s *WorkflowTestSuite) TestCancel() {
	view, err := s.reserve(s.seats[0].ID, s.seats[1].ID)
	s.Require().NoError(err)

	s.Require().NoError(s.reservations.Cancel(s.ctx, view.ID, "admin"))

	s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[0].ID))
	s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[1].ID))
	s.Equal(queries.TicketStatsView{Available: 3, Used: 2, Total: 5}, s.ticketStats(), "tickets stay used")

	_, err = s.reservationQ.GetByID(s.ctx, view.ID)
	s.True(errs.Is(err, errs.ErrReservationNotFound), err)

	err = s.reservations.Cancel(s.ctx, view.ID, "admin")
	s.True(errs.Is(err, errs.ErrReservationNotFound), err)

	again, err := s.reserve(s.seats[0].ID)
	s.Require().NoError(err)
	s.Equal("TK0003", again.Allocations[0].TicketCode)
}

func (s *WorkflowTestSuite) TestConcurrentReserveSameSeat() {
	const workers = 4
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		errsCh    = make(chan error, workers)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.reserve(s.seats[0].ID); err != nil {
				errsCh <- err
				return
			}
			succeeded.Add(1)
		}()
	}
	wg.Wait()
	close(errsCh)

	s.Equal(int32(1), succeeded.Load())
	for err := range errsCh {
		s.True(errs.Is(err, errs.ErrSeatUnavailable), err)
	}
	s.Equal(1, s.ticketStats().Used)
}

func (s *WorkflowTestSuite) TestConcurrentAllocate() {
	const workers = 6
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[string]int{}
		fails int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := s.tickets.AllocateOne(s.ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.True(errs.Is(err, errs.ErrTicketPoolExhausted), err)
				fails++
				return
			}
			codes[code]++
		}()
	}
	wg.Wait()

	s.Len(codes, 5)
	for code, n := range codes {
		s.Equal(1, n, "ticket %s handed out twice", code)
	}
	s.Equal(1, fails)
}

func (s *WorkflowTestSuite) TestConcurrentReserveDistinctSeats() {
	var seatIDs []uuid.UUID
	for _, name := range []string{"Hall A", "Hall B"} {
		table, err := s.seating.CreateTable(s.ctx, commands.CreateTableParams{Name: name, AvailableSeats: 200})
		s.Require().NoError(err)
		for _, seat := range table.Seats {
			seatIDs = append(seatIDs, seat.ID)
		}
	}
	s.Require().Len(seatIDs, 400)

	format, err := ticket.NewCodeFormat("TK", 4)
	s.Require().NoError(err)
	_, err = s.tickets.Generate(s.ctx, commands.GenerateParams{
		Count:     len(seatIDs) - 5,
		Format:    format,
		Geometry:  setting.RenderGeometry{FontSize: 12},
		BaseImage: []byte("base"),
	})
	s.Require().NoError(err)
	s.Require().Equal(len(seatIDs), s.ticketStats().Available)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		codes    = map[string]int{}
		failures []error
	)
	for _, id := range seatIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view, err := s.reserve(id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			for _, a := range view.Allocations {
				codes[a.TicketCode]++
			}
		}()
	}
	wg.Wait()

	s.Empty(failures)
	s.Len(codes, len(seatIDs))
	for code, n := range codes {
		s.Equal(1, n, "ticket %s handed out twice", code)
	}
	s.Equal(queries.TicketStatsView{Available: 0, Used: 400, Total: 400}, s.ticketStats())
	for _, id := range seatIDs {
		s.Equal(seating.SeatReserved.String(), s.seatStatus(id))
	}
}

func (s *WorkflowTestSuite) TestConcurrentCheckIn() {
	view, err := s.reserve(s.seats[0].ID)
	s.Require().NoError(err)
	_, err = s.reservations.MarkPaid(s.ctx, view.ID, "cashier")
	s.Require().NoError(err)
	code := view.Allocations[0].TicketCode

	const scanners = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = map[reservation.CheckInOutcome]int{}
		failures []error
	)
	for range scanners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.reservations.CheckInByCode(s.ctx, code, "gate")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			outcomes[result.Outcome]++
		}()
	}
	wg.Wait()

	s.Empty(failures)
	s.Equal(map[reservation.CheckInOutcome]int{
		reservation.CheckInOutcomeCheckedIn:        1,
		reservation.CheckInOutcomeAlreadyCheckedIn: scanners - 1,
	}, outcomes)
	s.Equal(seating.SeatCheckedIn.String(), s.seatStatus(s.seats[0].ID))

	checkedIn := 0
	for _, typ := range s.publisher.types() {
		if typ == shared.EventTicketCheckedIn {
			checkedIn++
		}
	}
	s.Equal(1, checkedIn)
}

func (s *WorkflowTestSuite) TestDeleteGuards() {
	_, err := s.reserve(s.seats[0].ID)
	s.Require().NoError(err)

	s.Run("予約のあるテーブルは削除できない", func() {
		err := s.seating.DeleteTable(s.ctx, s.tableID)
		s.True(errs.Is(err, errs.ErrTableInUse), err)
	})

	s.Run("予約のある販売者は削除できない", func() {
		err := s.sellers.Delete(s.ctx, s.sellerID)
		s.True(errs.Is(err, errs.ErrSellerInUse), err)
	})

	s.Run("予約中の座席は解放できない", func() {
		err := s.seating.ReleaseSeat(s.ctx, s.seats[0].ID)
		s.True(errs.Is(err, errs.ErrSeatInUse), err)
	})

	s.Run("予約中の座席は利用不可にできない", func() {
		err := s.seating.MarkSeat(s.ctx, s.seats[0].ID, seating.SeatUnavailable)
		s.True(errs.Is(err, errs.ErrSeatInUse), err)
	})

	s.Run("予約のないテーブルは削除できる", func() {
		other, err := s.seating.CreateTable(s.ctx, commands.CreateTableParams{Name: "T2", AvailableSeats: 2})
		s.Require().NoError(err)
		s.Require().NoError(s.seating.DeleteTable(s.ctx, other.ID))

		_, err = s.seatingQ.GetTable(s.ctx, other.ID)
		s.True(errs.Is(err, errs.ErrTableNotFound), err)
	})
}

func (s *WorkflowTestSuite) TestSeatingAdministration() {
	s.Run("同名テーブルは作成できない", func() {
		_, err := s.seating.CreateTable(s.ctx, commands.CreateTableParams{Name: "T1", AvailableSeats: 1})
		s.True(errs.Is(err, errs.ErrValidation), err)
	})

	s.Run("大文字小文字は区別する", func() {
		_, err := s.seating.CreateTable(s.ctx, commands.CreateTableParams{Name: "t1", AvailableSeats: 1})
		s.NoError(err)
	})

	s.Run("利用不可席の解放", func() {
		s.Require().NoError(s.seating.ReleaseSeat(s.ctx, s.seats[3].ID))
		s.Equal(seating.SeatAvailable.String(), s.seatStatus(s.seats[3].ID))
		s.Require().NoError(s.seating.ReleaseSeat(s.ctx, s.seats[3].ID))
	})

	s.Run("集計に反映される", func() {
		summary, err := s.seatingQ.Summary(s.ctx)
		s.Require().NoError(err)
		s.Equal(2, summary.Tables)
		s.Equal(5, summary.Seats)
		s.Equal(queries.CountsView{Available: 5, Total: 5}, summary.Counts)
	})
}

func (s *WorkflowTestSuite) TestGenerate() {
	s.Run("コード空間を超える要求はCapacity", func() {
		format, err := ticket.NewCodeFormat("Q", 1)
		s.Require().NoError(err)

		result, err := s.tickets.Generate(s.ctx, commands.GenerateParams{
			Count:     6,
			Format:    format,
			Geometry:  setting.RenderGeometry{FontSize: 12},
			BaseImage: []byte("base"),
		})
		s.True(errs.Is(err, errs.ErrCapacity), err)
		s.Empty(result.Codes)
		s.Equal(5, s.ticketStats().Total)
	})

	s.Run("設定がなければSettingNotFound", func() {
		_, err := s.tickets.GenerateFromSettings(s.ctx, 1)
		s.True(errs.Is(err, errs.ErrSettingNotFound), err)
	})

	s.Run("設定から生成する", func() {
		_, err := s.settings.Ensure(s.ctx, setting.Params{
			EventName:      "Gala",
			TableSize:      100,
			SeatSize:       20,
			NoOfColumns:    4,
			FontSize:       18,
			TicketPrefix:   "GA",
			NoOfDigits:     3,
			MaxNoOfTickets: 2,
			BaseImage:      []byte("base"),
		})
		s.Require().NoError(err)

		result, err := s.tickets.GenerateFromSettings(s.ctx, 0)
		s.Require().NoError(err)
		s.Len(result.Codes, 2)
		for _, code := range result.Codes {
			s.Regexp(`^GA\d{3}$`, code)
			image, err := s.ticketQ.Image(s.ctx, code)
			s.Require().NoError(err)
			s.Equal([]byte("png:"+code), image)
		}
	})
}

func (s *WorkflowTestSuite) TestSettings() {
	defaults := setting.Params{
		EventName:      "Gala",
		TableSize:      100,
		SeatSize:       20,
		NoOfColumns:    4,
		FontSize:       18,
		TicketPrefix:   "GA",
		NoOfDigits:     3,
		MaxNoOfTickets: 100,
		BaseImage:      []byte("base"),
	}

	s.Run("保存前の更新はSettingNotFound", func() {
		name := "x"
		_, err := s.settings.Save(s.ctx, commands.SettingPatch{EventName: &name})
		s.True(errs.Is(err, errs.ErrSettingNotFound), err)
	})

	s.Run("Ensureは既存の設定を上書きしない", func() {
		_, err := s.settings.Ensure(s.ctx, defaults)
		s.Require().NoError(err)

		other := defaults
		other.EventName = "Other"
		view, err := s.settings.Ensure(s.ctx, other)
		s.Require().NoError(err)
		s.Equal("Gala", view.EventName)
	})

	s.Run("部分更新", func() {
		venue := "Hall B"
		digits := 4
		view, err := s.settings.Save(s.ctx, commands.SettingPatch{Venue: &venue, NoOfDigits: &digits})
		s.Require().NoError(err)
		s.Equal("Gala", view.EventName)
		s.Equal("Hall B", view.Venue)
		s.Equal(4, view.NoOfDigits)
		s.Equal(len("base"), view.BaseImageBytes)
	})

	s.Run("不正な更新は反映しない", func() {
		zero := 0
		_, err := s.settings.Save(s.ctx, commands.SettingPatch{FontSize: &zero})
		s.True(errs.Is(err, errs.ErrValidation), err)
	})
}

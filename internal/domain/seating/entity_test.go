//go:build unit

package seating_test

import (
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/seating"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

func seatStatuses(t *seating.Table) []seating.SeatStatus {
	out := make([]seating.SeatStatus, 0, t.SeatCount())
	for _, s := range t.Seats() {
		out = append(out, s.Status())
	}
	return out
}

func TestNewTable(t *testing.T) {
	t.Run("利用可能席が先に並ぶ", func(t *testing.T) {
		table, err := seating.NewTable(" T1 ", 2, 1, "front row", now)
		require.NoError(t, err)

		assert.Equal(t, "T1", table.Name())
		want := []seating.SeatStatus{seating.SeatAvailable, seating.SeatAvailable, seating.SeatUnavailable}
		if diff := cmp.Diff(want, seatStatuses(table)); diff != "" {
			t.Errorf("seat statuses mismatch (-want +got):\n%s", diff)
		}

		labels := []string{}
		for i, s := range table.Seats() {
			labels = append(labels, s.Label())
			assert.Equal(t, i+1, s.Position())
			assert.Equal(t, table.ID(), s.TableID())
		}
		assert.Equal(t, []string{"S1", "S2", "S3"}, labels)
		assert.Equal(t, "T1 - Available Seats: 2 / 3", table.DisplayName())
	})

	t.Run("席なしのテーブルも作成できる", func(t *testing.T) {
		table, err := seating.NewTable("Empty", 0, 0, "", now)
		require.NoError(t, err)
		assert.Equal(t, 0, table.SeatCount())
		assert.Equal(t, seating.Counts{}, table.Counts())
	})

	testCases := []struct {
		name        string
		tableName   string
		available   int
		unavailable int
	}{
		{"名前が空NG", "  ", 1, 0},
		{"負の席数NG", "T1", -1, 0},
		{"負の利用不可席数NG", "T1", 1, -1},
		{"上限超過NG", "T1", seating.MaxSeatsPerTable, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := seating.NewTable(tc.tableName, tc.available, tc.unavailable, "", now)
			require.Nil(t, table)
			require.True(t, errs.Is(err, errs.ErrValidation), err)
		})
	}
}

func TestSeatTransitions(t *testing.T) {
	newSeat := func(t *testing.T, available int) *seating.Seat {
		t.Helper()
		table, err := seating.NewTable("T1", available, 1-available, "", now)
		require.NoError(t, err)
		return table.Seats()[0]
	}

	t.Run("予約とチェックイン", func(t *testing.T) {
		seat := newSeat(t, 1)

		require.NoError(t, seat.Reserve(now))
		assert.Equal(t, seating.SeatReserved, seat.Status())

		require.NoError(t, seat.CheckIn(now))
		assert.Equal(t, seating.SeatCheckedIn, seat.Status())

		require.NoError(t, seat.CheckIn(now), "second check-in is a no-op")
	})

	t.Run("予約済み席は再予約できない", func(t *testing.T) {
		seat := newSeat(t, 1)
		require.NoError(t, seat.Reserve(now))

		err := seat.Reserve(now)
		assert.True(t, errs.Is(err, errs.ErrSeatUnavailable), err)
	})

	t.Run("利用不可席は予約できない", func(t *testing.T) {
		seat := newSeat(t, 0)

		err := seat.Reserve(now)
		assert.True(t, errs.Is(err, errs.ErrSeatUnavailable), err)
	})

	t.Run("未予約席はチェックインできない", func(t *testing.T) {
		seat := newSeat(t, 1)

		err := seat.CheckIn(now)
		assert.True(t, errs.Is(err, errs.ErrSeatUnavailable), err)
	})

	t.Run("解放で利用可能に戻る", func(t *testing.T) {
		seat := newSeat(t, 1)
		require.NoError(t, seat.Reserve(now))

		later := now.Add(time.Minute)
		seat.Release(later)
		assert.Equal(t, seating.SeatAvailable, seat.Status())
		assert.Equal(t, later, seat.UpdatedAt())
	})

	t.Run("利用可否の切り替え", func(t *testing.T) {
		seat := newSeat(t, 1)

		require.NoError(t, seat.SetAvailability(seating.SeatUnavailable, now))
		assert.Equal(t, seating.SeatUnavailable, seat.Status())
		require.NoError(t, seat.SetAvailability(seating.SeatAvailable, now))
		assert.Equal(t, seating.SeatAvailable, seat.Status())
	})

	t.Run("予約状態は直接設定できない", func(t *testing.T) {
		seat := newSeat(t, 1)

		err := seat.SetAvailability(seating.SeatReserved, now)
		assert.True(t, errs.Is(err, errs.ErrValidation), err)
	})

	t.Run("使用中の席は切り替えできない", func(t *testing.T) {
		seat := newSeat(t, 1)
		require.NoError(t, seat.Reserve(now))

		err := seat.SetAvailability(seating.SeatUnavailable, now)
		assert.True(t, errs.Is(err, errs.ErrSeatInUse), err)
		assert.Equal(t, seating.SeatReserved, seat.Status())
	})
}

func TestCountsAndSummary(t *testing.T) {
	t1, err := seating.NewTable("T1", 3, 1, "", now)
	require.NoError(t, err)
	require.NoError(t, t1.Seats()[0].Reserve(now))
	require.NoError(t, t1.Seats()[1].Reserve(now))
	require.NoError(t, t1.Seats()[1].CheckIn(now))

	t2, err := seating.NewTable("T2", 2, 0, "", now)
	require.NoError(t, err)

	t.Run("テーブル単位の集計", func(t *testing.T) {
		want := seating.Counts{Available: 1, Unavailable: 1, Occupied: 2, Total: 4}
		if diff := cmp.Diff(want, t1.Counts()); diff != "" {
			t.Errorf("counts mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "T1 - Available Seats: 1 / 4", t1.DisplayName())
	})

	t.Run("会場全体の集計", func(t *testing.T) {
		want := seating.Summary{
			Tables: 2,
			Seats:  6,
			Counts: seating.Counts{Available: 3, Unavailable: 1, Occupied: 2, Total: 6},
		}
		if diff := cmp.Diff(want, seating.Summarize([]*seating.Table{t1, t2})); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParseSeatStatus(t *testing.T) {
	status, err := seating.ParseSeatStatus("UNAVAILABLE")
	require.NoError(t, err)
	assert.Equal(t, seating.SeatUnavailable, status)

	_, err = seating.ParseSeatStatus("available")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

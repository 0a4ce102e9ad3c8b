//go:build unit

package setting_test

import (
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/setting"
	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

func validParams() setting.Params {
	return setting.Params{
		EventName:      "Summer Gala",
		Venue:          "Main Hall",
		TableSize:      120,
		SeatSize:       30,
		NoOfColumns:    5,
		FontSize:       24,
		QRX:            40,
		QRY:            40,
		TextX:          40,
		TextY:          300,
		TicketPrefix:   "TK",
		NoOfDigits:     4,
		MaxNoOfTickets: 500,
		BaseImage:      []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestNewSetting(t *testing.T) {
	t.Run("正常", func(t *testing.T) {
		s, err := setting.NewSetting(validParams(), now)
		require.NoError(t, err)

		if diff := cmp.Diff(validParams(), s.Params()); diff != "" {
			t.Errorf("params mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "TK0001", s.CodeFormat().Format(1))
	})

	testCases := []struct {
		name   string
		mutate func(*setting.Params)
		errIs  error
	}{
		{"イベント名なしNG", func(p *setting.Params) { p.EventName = " " }, errs.ErrValidation},
		{"レイアウト0NG", func(p *setting.Params) { p.NoOfColumns = 0 }, errs.ErrValidation},
		{"フォントサイズ0NG", func(p *setting.Params) { p.FontSize = 0 }, errs.ErrValidation},
		{"負の座標NG", func(p *setting.Params) { p.QRX = -1 }, errs.ErrValidation},
		{"桁数0NG", func(p *setting.Params) { p.NoOfDigits = 0 }, errs.ErrValidation},
		{"最大枚数0NG", func(p *setting.Params) { p.MaxNoOfTickets = 0 }, errs.ErrValidation},
		{"桁数に収まらない枚数はCapacity", func(p *setting.Params) { p.NoOfDigits = 2; p.MaxNoOfTickets = 101 }, errs.ErrCapacity},
		{"ベース画像なしNG", func(p *setting.Params) { p.BaseImage = nil }, errs.ErrValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)

			s, err := setting.NewSetting(p, now)
			require.Nil(t, s)
			assert.True(t, errs.Is(err, tc.errIs), err)
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("画像省略時は既存の画像を保持", func(t *testing.T) {
		s, err := setting.NewSetting(validParams(), now)
		require.NoError(t, err)

		p := s.Params()
		p.EventName = "Winter Gala"
		p.BaseImage = nil
		later := now.Add(time.Hour)
		require.NoError(t, s.Update(p, later))

		assert.Equal(t, "Winter Gala", s.EventName())
		assert.Equal(t, validParams().BaseImage, s.BaseImage())
		assert.Equal(t, later, s.UpdatedAt())
		assert.Equal(t, now, s.CreatedAt())
	})

	t.Run("不正な更新は何も変えない", func(t *testing.T) {
		s, err := setting.NewSetting(validParams(), now)
		require.NoError(t, err)

		p := s.Params()
		p.EventName = "Broken"
		p.NoOfDigits = 0
		require.Error(t, s.Update(p, now.Add(time.Hour)))

		if diff := cmp.Diff(validParams(), s.Params()); diff != "" {
			t.Errorf("params changed (-want +got):\n%s", diff)
		}
	})
}

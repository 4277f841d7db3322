package types_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

func TestParseDate(t *testing.T) {
	t.Run("Plain calendar date", func(t *testing.T) {
		d, err := types.ParseDate("2024-03-10")
		gt.NoError(t, err)
		gt.Equal(t, types.Date("2024-03-10"), d)
	})

	t.Run("Timestamp suffix is ignored", func(t *testing.T) {
		d, err := types.ParseDate("2024-03-10T00:00:00Z")
		gt.NoError(t, err)
		gt.Equal(t, types.Date("2024-03-10"), d)
	})

	t.Run("Empty string yields zero date", func(t *testing.T) {
		d, err := types.ParseDate("")
		gt.NoError(t, err)
		gt.True(t, d.IsZero())
	})

	t.Run("Malformed input fails", func(t *testing.T) {
		_, err := types.ParseDate("10/03/2024")
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("invalid calendar date")
	})

	t.Run("Out of range day fails", func(t *testing.T) {
		_, err := types.ParseDate("2024-02-31")
		gt.Error(t, err)
	})
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local)
	gt.Equal(t, types.Date("2024-03-10"), types.DateOf(ts))
}

func TestDaysSince(t *testing.T) {
	t.Run("Forward delta", func(t *testing.T) {
		delta, ok := types.Date("2024-01-15").DaysSince(types.Date("2024-01-10"))
		gt.True(t, ok)
		gt.Equal(t, 5, delta)
	})

	t.Run("Same day is zero", func(t *testing.T) {
		delta, ok := types.Date("2024-01-10").DaysSince(types.Date("2024-01-10"))
		gt.True(t, ok)
		gt.Equal(t, 0, delta)
	})

	t.Run("Negative delta", func(t *testing.T) {
		delta, ok := types.Date("2024-01-09").DaysSince(types.Date("2024-01-10"))
		gt.True(t, ok)
		gt.Equal(t, -1, delta)
	})

	t.Run("Across a DST boundary stays whole", func(t *testing.T) {
		// 2024-03-31 is the EU spring-forward date; UTC arithmetic must
		// still see exactly one day
		delta, ok := types.Date("2024-04-01").DaysSince(types.Date("2024-03-31"))
		gt.True(t, ok)
		gt.Equal(t, 1, delta)
	})

	t.Run("Across a year boundary", func(t *testing.T) {
		delta, ok := types.Date("2024-01-02").DaysSince(types.Date("2023-12-30"))
		gt.True(t, ok)
		gt.Equal(t, 3, delta)
	})

	t.Run("Undefined when either side is absent", func(t *testing.T) {
		_, ok := types.Date("").DaysSince(types.Date("2024-01-10"))
		gt.False(t, ok)
		_, ok = types.Date("2024-01-10").DaysSince(types.Date(""))
		gt.False(t, ok)
	})
}

func TestLocalMidnight(t *testing.T) {
	ts, ok := types.Date("2024-03-10").LocalMidnight()
	gt.True(t, ok)
	gt.Equal(t, 2024, ts.Year())
	gt.Equal(t, time.March, ts.Month())
	gt.Equal(t, 10, ts.Day())
	gt.Equal(t, 0, ts.Hour())

	// Round trip: persisting midnight and truncating back yields the same date
	gt.Equal(t, types.Date("2024-03-10"), types.DateOf(ts))
}

func TestFormatBR(t *testing.T) {
	gt.Equal(t, "10/03/2024", types.Date("2024-03-10").FormatBR())
	gt.Equal(t, "Não informado", types.Date("").FormatBR())
}

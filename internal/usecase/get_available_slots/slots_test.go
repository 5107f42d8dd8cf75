package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func hoursOf(open, closeAt string) *domain.WorkingHours {
	return &domain.WorkingHours{
		DayOfWeek: int(day.Weekday()),
		OpenTime:  ptr.Ptr(types.TimeString(open)),
		CloseTime: ptr.Ptr(types.TimeString(closeAt)),
	}
}

func clock(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slot(h1, m1, h2, m2 int) domain.Slot {
	return domain.Slot{Start: clock(h1, m1), End: clock(h2, m2)}
}

func TestComputeAvailableSlots(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		hours    *domain.WorkingHours
		live     []domain.TimeWindow
		want     []domain.Slot
	}{
		{
			name:     "one hour window, 30 minutes",
			duration: 30,
			hours:    hoursOf("09:00:00", "10:00:00"),
			want: []domain.Slot{
				slot(9, 0, 9, 30),
				slot(9, 15, 9, 45),
				slot(9, 30, 10, 0),
			},
		},
		{
			name:     "booking blocks the second half",
			duration: 30,
			hours:    hoursOf("09:00:00", "10:00:00"),
			live:     []domain.TimeWindow{{Start: clock(9, 30), End: clock(10, 0)}},
			want:     []domain.Slot{slot(9, 0, 9, 30)},
		},
		{
			name:     "zero duration",
			duration: 0,
			hours:    hoursOf("09:00:00", "10:00:00"),
			want:     []domain.Slot{},
		},
		{
			name:     "negative duration",
			duration: -15,
			hours:    hoursOf("09:00:00", "10:00:00"),
			want:     []domain.Slot{},
		},
		{
			name:     "service longer than the day",
			duration: 90,
			hours:    hoursOf("09:00:00", "10:00:00"),
			want:     []domain.Slot{},
		},
		{
			name:     "closed day",
			duration: 30,
			hours:    &domain.WorkingHours{IsClosed: true},
			want:     []domain.Slot{},
		},
		{
			name:     "missing hours",
			duration: 30,
			hours:    nil,
			want:     []domain.Slot{},
		},
		{
			name:     "adjacent bookings do not block",
			duration: 60,
			hours:    hoursOf("09:00:00", "11:00:00"),
			live: []domain.TimeWindow{
				{Start: clock(8, 0), End: clock(9, 0)},
				{Start: clock(10, 0), End: clock(10, 30)},
			},
			want: []domain.Slot{slot(9, 0, 10, 0)},
		},
		{
			name:     "open until midnight",
			duration: 30,
			hours:    hoursOf("23:00:00", "24:00:00"),
			want: []domain.Slot{
				slot(23, 0, 23, 30),
				slot(23, 15, 23, 45),
				slot(23, 30, 24, 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAvailableSlots(day, tt.duration, tt.hours, tt.live)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeAvailableSlots_ScenarioA(t *testing.T) {
	got := ComputeAvailableSlots(day, 30, hoursOf("09:00:00", "10:00:00"), nil)

	starts := make([]time.Time, 0, len(got))
	for _, s := range got {
		starts = append(starts, s.Start)
		assert.Equal(t, 30, s.DurationMinutes())
	}
	assert.Contains(t, got, slot(9, 0, 9, 30))
	assert.Contains(t, got, slot(9, 30, 10, 0))
	assert.IsIncreasing(t, unix(starts))
}

func TestComputeAvailableSlots_Deterministic(t *testing.T) {
	hours := hoursOf("08:00:00", "20:00:00")
	live := []domain.TimeWindow{
		{Start: clock(12, 10), End: clock(13, 5)},
		{Start: clock(9, 0), End: clock(9, 45)},
	}

	first := ComputeAvailableSlots(day, 45, hours, live)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ComputeAvailableSlots(day, 45, hours, live))
	}
	for _, s := range first {
		for _, w := range live {
			assert.False(t, domain.TimeWindow{Start: s.Start, End: s.End}.Overlaps(w))
		}
	}
}

func TestComputeAvailableSlots_IgnoresTimeOfDate(t *testing.T) {
	hours := hoursOf("09:00:00", "10:00:00")

	assert.Equal(t,
		ComputeAvailableSlots(day, 30, hours, nil),
		ComputeAvailableSlots(day.Add(15*time.Hour+7*time.Minute), 30, hours, nil),
	)
}

func unix(ts []time.Time) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = t.Unix()
	}
	return out
}

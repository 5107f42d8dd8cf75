package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingCounters(t *testing.T) {
	m := NewWithRegisterer("booking-test", prometheus.NewRegistry())

	m.IncBookingOperation("hold", "created")
	m.IncBookingOperation("hold", "conflict")
	m.IncBookingOperation("hold", "conflict")
	m.AddHoldsReaped(3)
	m.AddHoldsReaped(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOperations.WithLabelValues("hold", "created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOperations.WithLabelValues("hold", "conflict")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HoldsReaped))
}

func TestMetrics_ObserveDBQueryCountsErrors(t *testing.T) {
	m := NewWithRegisterer("booking-test", prometheus.NewRegistry())

	m.ObserveDBQuery("UPDATE", time.Millisecond, nil)
	m.ObserveDBQuery("UPDATE", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("UPDATE")))
}

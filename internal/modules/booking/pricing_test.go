package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

func day(d int) domain.Date {
	return domain.NewDate(2025, time.March, d)
}

func TestBillableDays(t *testing.T) {
	assert.Equal(t, 1, BillableDays(day(10), day(10)))
	assert.Equal(t, 3, BillableDays(day(10), day(12)))
	assert.Equal(t, 1, BillableDays(day(12), day(10)))
}

func TestDailyRate(t *testing.T) {
	cases := []struct {
		name string
		ws   domain.Workspace
		want float64
	}{
		{"explicit daily", domain.Workspace{PriceDay: ptr(100.0), PriceHour: ptr(20.0)}, 100},
		{"from hourly", domain.Workspace{PriceHour: ptr(20.0)}, 160},
		{"from monthly", domain.Workspace{PriceMonth: ptr(2200.0)}, 100},
		{"zero daily falls through", domain.Workspace{PriceDay: ptr(0.0), PriceHour: ptr(10.0)}, 80},
		{"negative ignored", domain.Workspace{PriceDay: ptr(-5.0)}, 0},
		{"no rates", domain.Workspace{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DailyRate(&tc.ws), 0.0001)
		})
	}
}

func TestPrice(t *testing.T) {
	daily := &domain.Workspace{PriceDay: ptr(100.0)}
	hourly := &domain.Workspace{PriceHour: ptr(20.0)}
	monthly := &domain.Workspace{PriceDay: ptr(100.0), PriceMonth: ptr(1500.0)}

	cases := []struct {
		name       string
		ws         *domain.Workspace
		start, end domain.Date
		unit       domain.DurationUnit
		want       float64
	}{
		{"three days daily", daily, day(10), day(12), domain.DurationDay, 300},
		{"week minimum", daily, day(10), day(12), domain.DurationWeek, 500},
		{"week longer than minimum", daily, day(1), day(7), domain.DurationWeek, 700},
		{"hourly derived single day", hourly, day(10), day(10), domain.DurationDay, 160},
		{"month uses monthly rate", monthly, day(1), day(3), domain.DurationMonth, 1500},
		{"month accumulation wins", monthly, day(1), day(20), domain.DurationMonth, 2000},
		{"month without monthly rate", daily, day(1), day(1), domain.DurationMonth, 2200},
		{"no rates", &domain.Workspace{}, day(1), day(5), domain.DurationDay, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Price(tc.ws, tc.start, tc.end, tc.unit), 0.0001)
		})
	}
}

func TestPriceRoundsToCents(t *testing.T) {
	ws := &domain.Workspace{PriceMonth: ptr(1000.0)}
	assert.Equal(t, 45.45, Price(ws, day(1), day(1), domain.DurationDay))
}

func TestPriceForDates(t *testing.T) {
	ws := &domain.Workspace{PriceDay: ptr(100.0)}

	assert.Equal(t, 300.0, PriceForDates(ws, "2025-03-10", "2025-03-12", domain.DurationDay))
	assert.Equal(t, 100.0, PriceForDates(ws, "2025-03-10", "", domain.DurationDay))
	assert.Equal(t, 0.0, PriceForDates(ws, "not-a-date", "2025-03-12", domain.DurationDay))
	assert.Equal(t, 0.0, PriceForDates(ws, "2025-03-10", "garbage", domain.DurationDay))
}

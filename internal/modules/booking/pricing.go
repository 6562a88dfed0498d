package booking

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

const (
	billableHoursPerDay = 8
	workdaysPerWeek     = 5
	workdaysPerMonth    = 22
)

// BillableDays is the inclusive number of calendar days in [start, end], at least 1.
func BillableDays(start, end domain.Date) int {
	days := start.DaysUntil(end) + 1
	if days < 1 {
		return 1
	}
	return days
}

func rate(v *float64) float64 {
	if v == nil || *v <= 0 {
		return 0
	}
	return *v
}

// DailyRate derives the per-day price: the explicit daily rate, else
// hourly*8, else monthly/22, else 0.
func DailyRate(w *domain.Workspace) float64 {
	if d := rate(w.PriceDay); d > 0 {
		return d
	}
	if h := rate(w.PriceHour); h > 0 {
		return h * billableHoursPerDay
	}
	if m := rate(w.PriceMonth); m > 0 {
		return m / workdaysPerMonth
	}
	return 0
}

// Price computes the booking total. Week and month bookings never cost less
// than their bulk rate, and never less than the daily accumulation either.
func Price(w *domain.Workspace, start, end domain.Date, unit domain.DurationUnit) float64 {
	perDay := DailyRate(w)
	accumulated := perDay * float64(BillableDays(start, end))

	var total float64
	switch unit {
	case domain.DurationWeek:
		total = math.Max(accumulated, perDay*workdaysPerWeek)
	case domain.DurationMonth:
		perMonth := rate(w.PriceMonth)
		if perMonth == 0 {
			perMonth = perDay * workdaysPerMonth
		}
		total = math.Max(accumulated, perMonth)
	default:
		total = accumulated
	}
	return roundCents(total)
}

// PriceForDates prices raw date strings. Unparseable dates price at zero
// instead of failing; an empty end means a single-day booking.
func PriceForDates(w *domain.Workspace, startDate, endDate string, unit domain.DurationUnit) float64 {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{"workspace_id": w.ID, "start_date": startDate}).
			Warn("[PRICING] unparseable start date, pricing at zero")
		return 0
	}
	end := start
	if strings.TrimSpace(endDate) != "" {
		if end, err = domain.ParseDate(endDate); err != nil {
			logrus.WithFields(logrus.Fields{"workspace_id": w.ID, "end_date": endDate}).
				Warn("[PRICING] unparseable end date, pricing at zero")
			return 0
		}
	}
	return Price(w, start, end, unit)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type RevenueProjection struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type RevenueRealized struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type RevenueReport struct {
	Date      string            `json:"date"`
	Projected RevenueProjection `json:"projected"`
	Realized  RevenueRealized   `json:"realized_month"`
}

// GetRevenue sums booked prices. Projection counts pending and confirmed
// appointments from today to the end of the day, the week (Saturday) and the
// month; realized counts completed appointments of the current month.
type GetRevenue struct {
	ledger domain.Ledger
	policy Policy
}

func NewGetRevenue(ledger domain.Ledger, policy Policy) *GetRevenue {
	return &GetRevenue{ledger: ledger, policy: policy}
}

func (uc *GetRevenue) Execute(
	ctx context.Context,
	providerID uint,
) (*RevenueReport, error) {

	now := uc.policy.now()
	today := now.Format(domain.DateLayout)
	monthStart, monthEnd := monthBounds(now.Year(), now.Month())

	weekEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, int(time.Saturday-now.Weekday())).
		Format(domain.DateLayout)

	// the week can run into next month
	projectTo := monthEnd
	if weekEnd > projectTo {
		projectTo = weekEnd
	}

	upcoming, err := uc.ledger.ListAppointmentsForPeriod(
		ctx, providerID, today, projectTo, domain.ActiveStatuses(),
	)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{Date: today}
	for _, ap := range upcoming {
		if ap.Date == today {
			report.Projected.Today += ap.Price
		}
		if ap.Date <= weekEnd {
			report.Projected.Week += ap.Price
		}
		if ap.Date <= monthEnd {
			report.Projected.Month += ap.Price
		}
	}

	done, err := uc.ledger.ListAppointmentsForPeriod(
		ctx, providerID, monthStart, monthEnd,
		[]string{string(domain.StatusCompleted)},
	)
	if err != nil {
		return nil, err
	}

	for _, ap := range done {
		report.Realized.Count++
		report.Realized.Amount += ap.Price
	}

	return report, nil
}

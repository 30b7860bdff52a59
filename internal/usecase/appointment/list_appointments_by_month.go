package appointment

import (
	"context"
	"strconv"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListAppointmentsByMonth struct {
	ledger domain.Ledger
}

func NewListAppointmentsByMonth(
	ledger domain.Ledger,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		ledger: ledger,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	providerID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, &domain.ParseError{Field: "month", Value: strconv.Itoa(month), Reason: "expected 1..12"}
	}

	first, last := monthBounds(year, time.Month(month))

	appointments, err := uc.ledger.ListAppointmentsForPeriod(
		ctx,
		providerID,
		first,
		last,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentListDTOs(appointments), nil
}

// monthBounds returns the first and last civil dates of the month.
func monthBounds(year int, month time.Month) (string, string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(domain.DateLayout), end.Format(domain.DateLayout)
}

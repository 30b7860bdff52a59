package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListAppointmentsByDate struct {
	ledger domain.Ledger
}

func NewListAppointmentsByDate(
	ledger domain.Ledger,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		ledger: ledger,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	appointments, err := uc.ledger.ListAppointmentsForDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentListDTOs(appointments), nil
}

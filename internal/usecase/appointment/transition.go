package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TransitionAppointment struct {
	ledger domain.Ledger
	audit  *audit.Dispatcher
	policy Policy
}

func NewTransitionAppointment(
	ledger domain.Ledger,
	audit *audit.Dispatcher,
	policy Policy,
) *TransitionAppointment {
	return &TransitionAppointment{
		ledger: ledger,
		audit:  audit,
		policy: policy,
	}
}

// Execute moves the provider's appointment to status to. Disallowed moves
// return ErrInvalidTransition and leave the appointment unchanged.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID string,
	to domain.Status,
) (*models.Appointment, error) {

	if _, err := uuid.Parse(appointmentID); err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var from string
	ap, err := uc.ledger.ApplyTransition(ctx, appointmentID, providerID, func(ap *models.Appointment) error {
		from = ap.Status
		return domain.Transition(ap, to, uc.policy.now())
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "appointment_" + string(to),
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}

package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint
	ServiceID  uint

	Date      string
	StartTime string
	// EndTime may be empty when ServiceID is set; the service duration
	// then decides the end.
	EndTime string

	ClientRef   string
	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string
	Source      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	schedule  domain.ScheduleStore
	blackouts domain.BlackoutRegistry
	ledger    domain.Ledger
	catalog   domain.Catalog
	audit     *audit.Dispatcher
	policy    Policy
}

func NewCreateAppointment(
	schedule domain.ScheduleStore,
	blackouts domain.BlackoutRegistry,
	ledger domain.Ledger,
	catalog domain.Catalog,
	audit *audit.Dispatcher,
	policy Policy,
) *CreateAppointment {
	return &CreateAppointment{
		schedule:  schedule,
		blackouts: blackouts,
		ledger:    ledger,
		catalog:   catalog,
		audit:     audit,
		policy:    policy,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request against the provider's day and commits it as
// a pending appointment. The slot list a client picked from is advisory; the
// ledger re-checks for conflicts at commit time.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	start, err := parseClock("start_time", in.StartTime)
	if err != nil {
		return nil, err
	}

	var svc *models.Service
	if in.ServiceID != 0 {
		if svc, err = uc.catalog.GetService(ctx, in.ServiceID); err != nil {
			return nil, err
		}
	}

	var end int
	switch {
	case in.EndTime != "":
		if end, err = parseClock("end_time", in.EndTime); err != nil {
			return nil, err
		}
	case svc != nil && svc.DurationMin > 0:
		end = start + svc.DurationMin
	default:
		return nil, domain.ErrInvalidDuration
	}

	if end <= start || end > domain.MinutesPerDay {
		return nil, domain.ErrInvalidInterval
	}
	iv := domain.Interval{Start: start, End: end}

	if uc.policy.startsTooSoon(date, start) {
		return nil, domain.ErrTooSoon
	}

	window, err := uc.schedule.GetWorkingWindow(ctx, in.ProviderID, domain.Weekday(date))
	if err != nil {
		return nil, err
	}
	if window == nil || !window.Fits(iv) {
		return nil, domain.ErrOutsideWorkingHours
	}

	blackouts, err := uc.blackouts.GetBlackouts(ctx, in.ProviderID, in.Date)
	if err != nil {
		return nil, err
	}
	if domain.Blocks(blackouts, iv) {
		return nil, domain.ErrOutsideWorkingHours
	}

	ap := &models.Appointment{
		ProviderID:  in.ProviderID,
		Date:        in.Date,
		StartMinute: iv.Start,
		EndMinute:   iv.End,
		Status:      string(domain.InitialStatus()),
		ClientRef:   in.ClientRef,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		Notes:       in.Notes,
		Source:      in.Source,
	}
	if svc != nil {
		ap.ServiceID = &svc.ID
		ap.Price = svc.Price
	}

	if err := uc.ledger.Reserve(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.audit.Dispatch(audit.Event{
				ProviderID: in.ProviderID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"date":  in.Date,
					"start": domain.MinutesToTime(iv.Start),
					"end":   domain.MinutesToTime(iv.End),
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: ap.ProviderID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata: map[string]any{
			"date":   ap.Date,
			"start":  domain.MinutesToTime(ap.StartMinute),
			"end":    domain.MinutesToTime(ap.EndMinute),
			"source": ap.Source,
		},
	})

	return ap, nil
}

func parseClock(field, v string) (int, error) {
	m, err := domain.TimeToMinutes(v)
	if err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			pe.Field = field
		}
		return 0, err
	}
	return m, nil
}

package appointment

import (
	"context"
	"strconv"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type GetAvailability struct {
	schedule  domain.ScheduleStore
	blackouts domain.BlackoutRegistry
	ledger    domain.Ledger
	catalog   domain.Catalog
	policy    Policy
}

func NewGetAvailability(
	schedule domain.ScheduleStore,
	blackouts domain.BlackoutRegistry,
	ledger domain.Ledger,
	catalog domain.Catalog,
	policy Policy,
) *GetAvailability {
	return &GetAvailability{
		schedule:  schedule,
		blackouts: blackouts,
		ledger:    ledger,
		catalog:   catalog,
		policy:    policy,
	}
}

// Execute lists the bookable start times for in.Date. A closed day yields an
// empty list; any store failure yields an error and no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	duration, err := uc.duration(ctx, in)
	if err != nil {
		return nil, err
	}

	step := in.StepMinutes
	if step > domain.MinutesPerDay {
		return nil, &domain.ParseError{Field: "step", Value: strconv.Itoa(step), Reason: "expected at most 1440 minutes"}
	}
	if step <= 0 {
		step = uc.policy.step()
	}

	window, err := uc.schedule.GetWorkingWindow(ctx, in.ProviderID, domain.Weekday(date))
	if err != nil {
		return nil, err
	}
	if window == nil {
		return []string{}, nil
	}

	blackouts, err := uc.blackouts.GetBlackouts(ctx, in.ProviderID, in.Date)
	if err != nil {
		return nil, err
	}

	busy, err := uc.ledger.GetActiveAppointments(ctx, in.ProviderID, in.Date)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(window, busy, blackouts, duration, step)

	out := slots[:0]
	for _, s := range slots {
		m, _ := domain.TimeToMinutes(s)
		if uc.policy.startsTooSoon(date, m) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (uc *GetAvailability) duration(
	ctx context.Context,
	in domain.AvailabilityInput,
) (int, error) {

	switch {
	case in.DurationMinutes > domain.MinutesPerDay:
		return 0, domain.ErrInvalidDuration
	case in.DurationMinutes > 0:
		return in.DurationMinutes, nil
	case in.DurationMinutes < 0:
		return 0, domain.ErrInvalidDuration
	case in.ServiceID != 0:
		svc, err := uc.catalog.GetService(ctx, in.ServiceID)
		if err != nil {
			return 0, err
		}
		if svc.DurationMin <= 0 {
			return 0, domain.ErrInvalidDuration
		}
		return svc.DurationMin, nil
	default:
		return 0, domain.ErrInvalidDuration
	}
}

package dto

import (
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		Date:        ap.Date,
		StartTime:   domain.MinutesToTime(ap.StartMinute),
		EndTime:     domain.MinutesToTime(ap.EndMinute),
		Status:      ap.Status,
		ClientName:  ap.ClientName,
		ClientPhone: ap.ClientPhone,
		Price:       ap.Price,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}

func NewAppointmentListDTOs(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentListDTO(ap))
	}
	return out
}

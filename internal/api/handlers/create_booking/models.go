package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventTypeID int64           `json:"eventTypeId"`
	Date        string          `json:"date"` // "2026-03-09"
	Time        string          `json:"time"` // "10:00"
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	Answers     json.RawMessage `json:"answers,omitempty"`
}

// CalendarLinksResponse ссылки "добавить в календарь"
type CalendarLinksResponse struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64                 `json:"id"`
	EventTypeID   int64                 `json:"eventTypeId"`
	Title         string                `json:"title"`
	StartTime     time.Time             `json:"startTime"`
	EndTime       time.Time             `json:"endTime"`
	AttendeeName  string                `json:"attendeeName"`
	AttendeeEmail string                `json:"attendeeEmail"`
	Location      *string               `json:"location,omitempty"`
	IsConfirmed   bool                  `json:"isConfirmed"`
	CalendarLinks CalendarLinksResponse `json:"calendarLinks"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		EventTypeID: r.EventTypeID,
		Date:        bookingDate,
		StartTime:   startTime,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Location:    r.Location,
		Notes:       r.Notes,
		Answers:     r.Answers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		EventTypeID:   resp.EventTypeID,
		Title:         resp.Title,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		AttendeeName:  resp.AttendeeName,
		AttendeeEmail: resp.AttendeeEmail,
		Location:      resp.Location,
		IsConfirmed:   resp.IsConfirmed,
		CalendarLinks: CalendarLinksResponse{
			Google:  resp.CalendarLinks.Google,
			Outlook: resp.CalendarLinks.Outlook,
		},
		CreatedAt: resp.CreatedAt,
	}
}

package get_public_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidDateRange   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRangeTooLong       = "диапазон дат не может превышать 31 день"
	msgEventTypeNotFound  = "тип события не найден"
	msgInvalidRequest     = "некорректные параметры запроса"
)

// defaultRangeDays размер окна по умолчанию, когда даты не переданы
const defaultRangeDays = 7

// maxRangeDays верхняя граница окна, защита от тяжёлых запросов
const maxRangeDays = 31

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/event-types/{eventTypeId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil || eventTypeID <= 0 {
		h.logger.Warn("GET /public/event-types/{eventTypeId}/availability - Invalid event type id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		h.logger.Warn("GET /public/event-types/{eventTypeId}/availability - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	if endDate.Sub(startDate) > maxRangeDays*24*time.Hour {
		h.logger.Warn("GET /public/event-types/{eventTypeId}/availability - Range too long: event_type_id=%d", eventTypeID)
		handlers.RespondBadRequest(w, msgRangeTooLong)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		EventTypeID: eventTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrEventTypeNotFound):
			h.logger.Warn("GET /public/event-types/{eventTypeId}/availability - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /public/event-types/{eventTypeId}/availability - Invalid request: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /public/event-types/{eventTypeId}/availability - Failed to compute availability: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseDateRange читает start_date и end_date из query
// Без параметров отдаётся окно на defaultRangeDays дней от сегодня
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := query.Get("start_date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		startDate = parsed
	}

	endDate := startDate.AddDate(0, 0, defaultRangeDays-1)
	if raw := query.Get("end_date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endDate = parsed
	}

	return startDate, endDate, nil
}

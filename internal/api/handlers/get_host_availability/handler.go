package get_host_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidDateRange   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEventTypeNotFound  = "тип события не найден"
	msgAccessDenied       = "нет доступа к этому типу события"
	msgInvalidRequest     = "некорректные параметры запроса"
)

const defaultRangeDays = 7

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

// Handle GET /api/v1/event-types/{eventTypeId}/availability
// Владелец видит сетку слотов своего типа события, включая неактивные типы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil || eventTypeID <= 0 {
		h.logger.Warn("GET /event-types/{eventTypeId}/availability - Invalid event type id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		h.logger.Warn("GET /event-types/{eventTypeId}/availability - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		RequestorID: &userID,
		EventTypeID: eventTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{eventTypeId}/availability - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getAvailability.ErrAccessDenied):
			h.logger.Warn("GET /event-types/{eventTypeId}/availability - Access denied: user_id=%d, event_type_id=%d", userID, eventTypeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /event-types/{eventTypeId}/availability - Invalid request: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /event-types/{eventTypeId}/availability - Failed to compute availability: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

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

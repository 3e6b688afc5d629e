package update_event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidInput       = "некорректные данные события"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgTimeConflict       = "интервал пересекается с существующим событием"
	msgEventNotFound      = "событие не найдено"
	msgAccessDenied       = "нет доступа к этому событию"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{eventId}
// При переносе времени пересечения проверяются заново
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil || eventID <= 0 {
		h.logger.Warn("PUT /events/{eventId} - Invalid event id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req models.UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{eventId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PUT /events/{eventId} - Not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, events.ErrAccessDenied):
			h.logger.Warn("PUT /events/{eventId} - Access denied: user_id=%d, event_id=%d", userID, eventID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, events.ErrTimeConflict):
			h.logger.Warn("PUT /events/{eventId} - Time conflict: event_id=%d", eventID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, events.ErrInvalidTimeRange):
			h.logger.Warn("PUT /events/{eventId} - Invalid time range: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("PUT /events/{eventId} - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /events/{eventId} - Failed to update event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{eventId} - Event updated: id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_event_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidInput       = "некорректные данные типа события"
	msgEventTypeNotFound  = "тип события не найден"
	msgAccessDenied       = "нет доступа к этому типу события"
)

type Handler struct {
	service EventTypeService
	logger  Logger
}

func NewHandler(service EventTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/event-types/{eventTypeId}
// Смена названия регенерирует slug: старая публичная ссылка перестаёт работать
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil || eventTypeID <= 0 {
		h.logger.Warn("PUT /event-types/{eventTypeId} - Invalid event type id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	var req models.UpdateEventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /event-types/{eventTypeId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), eventTypeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, eventtypes.ErrEventTypeNotFound):
			h.logger.Warn("PUT /event-types/{eventTypeId} - Not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, eventtypes.ErrAccessDenied):
			h.logger.Warn("PUT /event-types/{eventTypeId} - Access denied: user_id=%d, event_type_id=%d", userID, eventTypeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, eventtypes.ErrInvalidInput):
			h.logger.Warn("PUT /event-types/{eventTypeId} - Invalid input: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /event-types/{eventTypeId} - Failed to update event type: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /event-types/{eventTypeId} - Event type updated: id=%d, slug=%s", result.ID, result.Slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}

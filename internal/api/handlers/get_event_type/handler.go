package get_event_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidEventTypeID = "некорректный ID типа события"
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

// Handle GET /api/v1/event-types/{eventTypeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil || eventTypeID <= 0 {
		h.logger.Warn("GET /event-types/{eventTypeId} - Invalid event type id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	result, err := h.service.GetByID(r.Context(), eventTypeID, userID)
	if err != nil {
		switch {
		case errors.Is(err, eventtypes.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{eventTypeId} - Not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, eventtypes.ErrAccessDenied):
			h.logger.Warn("GET /event-types/{eventTypeId} - Access denied: user_id=%d, event_type_id=%d", userID, eventTypeID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /event-types/{eventTypeId} - Failed to get event type: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

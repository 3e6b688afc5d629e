package get_public_event_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
)

const (
	msgInvalidID         = "некорректный идентификатор типа события"
	msgEventTypeNotFound = "тип события не найден"
)

type Handler struct {
	eventTypes EventTypeService
	settings   SettingsService
	logger     Logger
}

func NewHandler(eventTypes EventTypeService, settings SettingsService, logger Logger) *Handler {
	return &Handler{
		eventTypes: eventTypes,
		settings:   settings,
		logger:     logger,
	}
}

// Handle GET /api/v1/public/event-types/{identifier}
// По умолчанию identifier трактуется как slug; с ?by_id=true — как числовой ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	byID := r.URL.Query().Get("by_id") == "true"
	var id int64
	if byID {
		var err error
		id, err = strconv.ParseInt(identifier, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /public/event-types/{identifier} - Invalid id: %s", identifier)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
	}

	result, err := h.eventTypes.GetPublic(r.Context(), identifier, byID, id)
	if err != nil {
		switch {
		case errors.Is(err, eventtypes.ErrEventTypeNotFound):
			h.logger.Warn("GET /public/event-types/{identifier} - Not found: %s", identifier)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		default:
			h.logger.Error("GET /public/event-types/{identifier} - Failed to get event type: identifier=%s, error=%v", identifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Страница бронирования показывает имя владельца; ошибка настроек
	// не должна ронять весь ответ
	var host *HostInfo
	if settings, err := h.settings.Get(r.Context(), result.UserID); err == nil {
		host = &HostInfo{Name: settings.DisplayName, Email: settings.NotifyEmail}
	} else {
		h.logger.Warn("GET /public/event-types/{identifier} - Failed to load host settings: user_id=%d, error=%v", result.UserID, err)
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result, host))
}

package cancel_event

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	cancelEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_event"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidInput       = "некорректные данные отмены"
	msgEventNotFound      = "событие не найдено"
	msgAccessDenied       = "нет доступа к этому событию"
)

type Handler struct {
	useCase CancelEventUseCase
	logger  Logger
}

func NewHandler(useCase CancelEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/events/{eventId}/cancel
// Событие удаляется, уведомления участникам ставятся в очередь атомарно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil || eventID <= 0 {
		h.logger.Warn("DELETE /events/{eventId}/cancel - Invalid event id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	// Тело с причиной опционально
	var req CancelEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("DELETE /events/{eventId}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelEvent.Request{
		EventID: eventID,
		UserID:  userID,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelEvent.ErrEventNotFound):
			h.logger.Warn("DELETE /events/{eventId}/cancel - Not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, cancelEvent.ErrAccessDenied):
			h.logger.Warn("DELETE /events/{eventId}/cancel - Access denied: user_id=%d, event_id=%d", userID, eventID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelEvent.ErrInvalidInput):
			h.logger.Warn("DELETE /events/{eventId}/cancel - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /events/{eventId}/cancel - Failed to cancel event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{eventId}/cancel - Event cancelled: id=%d, notifications=%d",
		result.EventID, result.Notifications)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

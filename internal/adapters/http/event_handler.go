package http

import (
	"encoding/json"
	"net/http"

	"pulsehub/internal/domain"
)

type EventHandler struct {
	svc domain.EventService
}

func NewEventHandler(svc domain.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	env, err := h.svc.Publish(r.Context(), req)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "Event dispatched",
		Data:    env,
	})
}

func (h *EventHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.EventListOptions{
		Page:  GetInt(q, "page", 1),
		Limit: GetInt(q, "limit", 20),
		Names: GetStringSlice(q, "names"),
		Since: GetTime(q, "since"),
	}

	records, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    records,
		Meta: PaginationMeta{
			Page:  opts.Page,
			Limit: opts.Limit,
			Total: total,
		},
	})
}

func (h *EventHandler) Listeners(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    h.svc.Listeners(),
	})
}

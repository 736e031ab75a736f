package handler

import (
	"encoding/json"
	"net/http"

	"batepapo/internal/api/middleware"
	"batepapo/internal/api/request"
	"batepapo/internal/api/response"
	"batepapo/internal/model"
	"batepapo/internal/services/registry"
)

// ParticipantHandler handles participant-related endpoints
type ParticipantHandler struct {
	registry *registry.Controller
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(reg *registry.Controller) *ParticipantHandler {
	return &ParticipantHandler{registry: reg}
}

// Join handles POST /participants
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := request.Validate(req); err != nil {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	participant, err := h.registry.Join(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromModel(participant))
}

// List handles GET /participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.registry.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantsFromModel(participants))
}

// Heartbeat handles POST /status
func (h *ParticipantHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == "" {
		// A blank claimed identity can never name an active participant
		WriteError(w, model.ErrParticipantNotFound)
		return
	}

	if err := h.registry.Heartbeat(r.Context(), user); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"batepapo/internal/api/middleware"
	"batepapo/internal/api/request"
	"batepapo/internal/api/response"
	"batepapo/internal/model"
	"batepapo/internal/services/chat"
)

// MessageHandler handles message-related endpoints
type MessageHandler struct {
	chat *chat.Controller
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(chatController *chat.Controller) *MessageHandler {
	return &MessageHandler{chat: chatController}
}

// Send handles POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == "" {
		WriteError(w, NewInvalidRequestError("User header is required"))
		return
	}

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := request.Validate(req); err != nil {
		WriteError(w, NewInvalidRequestError("to and text are required and type must be message or private_message"))
		return
	}

	msg, err := h.chat.Send(r.Context(), user, req.To, req.Text, model.MessageType(req.Type))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MessageFromModel(msg))
}

// List handles GET /messages
// Returns the messages the caller may read, oldest first. An optional
// positive limit keeps only the most recent ones.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	messages, err := h.chat.ListVisible(r.Context(), user, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessagesFromModel(messages))
}

// Update handles PUT /messages/{id}
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == "" {
		WriteError(w, NewInvalidRequestError("User header is required"))
		return
	}
	id := model.MessageID(mux.Vars(r)["id"])

	var req request.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := request.Validate(req); err != nil {
		WriteError(w, NewInvalidRequestError("to and text are required and type must be message or private_message"))
		return
	}

	if err := h.chat.Update(r.Context(), id, user, req.To, req.Text, model.MessageType(req.Type)); err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w)
}

// Delete handles DELETE /messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := model.MessageID(mux.Vars(r)["id"])

	if err := h.chat.Delete(r.Context(), id, user); err != nil {
		// A foreign message is reported as not found rather than
		// confirming it exists
		if errors.Is(err, model.ErrNotOwner) {
			WriteError(w, NewNotFoundError())
			return
		}
		WriteError(w, err)
		return
	}

	response.OK(w)
}

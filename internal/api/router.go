package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"batepapo/internal/api/handler"
	apimiddleware "batepapo/internal/api/middleware"
	"batepapo/internal/middleware"
	"batepapo/internal/services/chat"
	"batepapo/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Registry       *registry.Controller
	ChatController *chat.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	participantHandler := handler.NewParticipantHandler(cfg.Registry)
	messageHandler := handler.NewMessageHandler(cfg.ChatController)

	// Common middleware
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(apimiddleware.Identity())

	// Participant routes
	r.HandleFunc("/participants", participantHandler.Join).Methods(http.MethodPost)
	r.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)

	// Message routes (caller identity from the User header)
	r.HandleFunc("/messages", messageHandler.Send).Methods(http.MethodPost)
	r.HandleFunc("/messages", messageHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}", messageHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/messages/{id}", messageHandler.Delete).Methods(http.MethodDelete)

	// Heartbeat route
	r.HandleFunc("/status", participantHandler.Heartbeat).Methods(http.MethodPost)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/release"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type LoadService interface {
	CreateLoad(ctx context.Context, payload release.LoadPayload, actingUser *repository.User) (*repository.Load, error)
	GetLoads(ctx context.Context) ([]*repository.Load, error)
	GetLoadByID(ctx context.Context, id int64) (*release.LoadDetails, error)
	GetLoadByToken(ctx context.Context, token string) (*repository.LoadWithDispatcher, error)
	GetReleaseLogs(ctx context.Context) ([]*repository.ReleaseLogEntry, error)
	UpdateLoad(ctx context.Context, id int64, payload release.LoadPayload) (*repository.Load, error)
	Validate(ctx context.Context, id int64) (*repository.Load, error)
	Void(ctx context.Context, id int64) (*repository.Load, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*repository.Load, error)
	ConfirmRelease(ctx context.Context, req release.ConfirmRequest) (*repository.Load, error)
	DeleteLoad(ctx context.Context, id int64) error
}

type UserRepo interface {
	Validate(ctx context.Context, username, password string) (*repository.User, error)
}

type DocumentGenerator interface {
	Generate(load *repository.Load, timezone string) ([]byte, error)
}

type Server struct {
	service  LoadService
	userRepo UserRepo
	docs     DocumentGenerator
	timezone string
	logger   *zap.Logger
	server   *http.Server
}

func New(service LoadService, userRepo UserRepo, docs DocumentGenerator, timezone string, logger *zap.Logger) *Server {
	return &Server{
		service:  service,
		userRepo: userRepo,
		docs:     docs,
		timezone: timezone,
		logger:   logger,
	}
}

func (s *Server) Run(port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.accessLogMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// Dispatcher API, behind basic auth.
	api := router.PathPrefix("/api/loads").Subrouter()
	api.Use(s.basicAuthMiddleware)
	api.HandleFunc("", s.handleCreateLoad).Methods(http.MethodPost)
	api.HandleFunc("", s.handleListLoads).Methods(http.MethodGet)
	api.HandleFunc("/logs", s.handleReleaseLogs).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", s.handleGetLoad).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}/document", s.handleLoadDocument).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", s.handleUpdateLoad).Methods(http.MethodPut)
	api.HandleFunc("/{id:[0-9]+}/validate", s.handleValidateLoad).Methods(http.MethodPatch)
	api.HandleFunc("/{id:[0-9]+}/void", s.handleVoidLoad).Methods(http.MethodPatch)
	api.HandleFunc("/{id:[0-9]+}/status", s.handleUpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/{id:[0-9]+}", s.handleDeleteLoad).Methods(http.MethodDelete)

	// Public verification gateway, reached from the QR scan. No auth.
	verify := router.PathPrefix("/api/verify").Subrouter()
	verify.HandleFunc("/{token}", s.handleVerifyGet).Methods(http.MethodGet)
	verify.HandleFunc("/{token}/confirm", s.handleVerifyConfirm).Methods(http.MethodPost)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain failures to their HTTP status hint;
// anything untyped is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var relErr *release.Error
	if errors.As(err, &relErr) {
		respondError(w, relErr.Status, relErr.Message)
		return
	}
	logger.Error("unhandled service error", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

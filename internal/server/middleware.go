package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/repository"
)

type contextKey int

const currentUserKey contextKey = iota

// currentUser returns the authenticated user resolved by the basic-auth
// middleware, or nil on the public routes.
func currentUser(ctx context.Context) *repository.User {
	user, _ := ctx.Value(currentUserKey).(*repository.User)
	return user
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.userRepo.Validate(r.Context(), username, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrw.GetStatusCode()),
			zap.Duration("duration", time.Since(start)))
	})
}

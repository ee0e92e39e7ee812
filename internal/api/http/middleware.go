package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository"
	"registrar-portal-backend/internal/security"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registrar_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "registrar_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "path"})
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorFromContext returns the authenticated actor, or nil outside the auth
// middleware.
func ActorFromContext(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorContextKey).(*domain.Actor)
	return actor
}

// statusRecorder captures the response code for metrics and logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler with request-id assignment, structured request
// logging, and Prometheus counters.
func Instrument(pathLabel string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		timer := prometheus.NewTimer(httpLatency.WithLabelValues(r.Method, pathLabel))
		defer timer.ObserveDuration()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)

		httpReqTotal.WithLabelValues(r.Method, pathLabel, strconv.Itoa(rec.status)).Inc()
		logger.Debug("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// AuthMiddleware validates the bearer token and stores the actor context on
// the request. The token proves identity; role, scope, and the active flag
// come from the actor row, so deactivating an account takes effect on the
// next request rather than at token expiry.
type AuthMiddleware struct {
	tokens security.TokenManager
	actors repository.ActorRepository
}

func NewAuthMiddleware(tokens security.TokenManager, actors repository.ActorRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, actors: actors}
}

func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		actor, err := m.actors.GetByID(r.Context(), claims.ActorID)
		if err != nil || !actor.Active {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "account is not active"})
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next(w, r.WithContext(ctx))
	}
}

package httpapp

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/cesargomez89/fullstack/internal/constants"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/logger"
)

// RequestID takes the caller's X-Request-ID or generates one, echoes it
// back and stores it in the request context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(constants.HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(constants.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// RequestLogger logs one line per request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.InfoContext(r.Context(), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Recoverer turns a panic into a logged 500 envelope.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "Panic recovered", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
				e := apperrors.Internal("panic", fmt.Errorf("%v", rec))
				logError(nil, r, e)
				writeJSON(w, e.HTTPStatus(), e.ToResponse())
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", constants.HeaderAuthorization, constants.HeaderRequestID},
		ExposedHeaders: []string{constants.HeaderRequestID},
		MaxAge:         300,
	})
}

// rateLimiter limits each client IP to requests per window and answers
// the excess with the 429 envelope.
func rateLimiter(log *logger.Logger, requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			e := apperrors.TooManyRequests()
			logError(log, r, e)
			writeJSON(w, e.HTTPStatus(), e.ToResponse())
		}),
	)
}

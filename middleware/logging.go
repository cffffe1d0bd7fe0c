package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const RequestIDKey contextKey = "requestID"

// RequestLogger logs one line per request and tags it with a request id,
// echoed back in X-Request-ID. A caller supplied id is kept only when it is
// a canonical UUID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil || len(requestID) != 36 {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ww := &responseWriter{w, http.StatusOK}
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		defer func() {
			log.WithFields(log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"uri":        r.RequestURI,
				"remote":     r.RemoteAddr,
				"status":     ww.statusCode,
				"duration":   time.Since(start),
			}).Info(http.StatusText(ww.statusCode))
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request id from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}

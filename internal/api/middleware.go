package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger tags each request with a short id and logs method, path,
// status and duration, so concurrent analyze calls can be told apart in
// the log.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		start := time.Now()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(recorder, r)

		log.Printf("[%s] %s %s -> %d (%s)", requestID, r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

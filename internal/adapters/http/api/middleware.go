// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/squadrate/pkg/metrics"
)

var tracer = otel.Tracer("api")

// MetricsMiddleware records request count, latency and error class for
// endpoint, and runs the handler inside a server span.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "http."+endpoint,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.method", r.Method)),
		)
		defer span.End()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		ms := float64(time.Since(start).Milliseconds())
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, ms)
		span.SetAttributes(attribute.Int("http.status_code", rec.status))

		if rec.status < http.StatusBadRequest {
			return
		}
		class := errorClass(rec.status)
		metrics.RecordErrorByEndpoint(endpoint, r.Method, class)
		metrics.RecordErrorByType(class, severity(rec.status))
		metrics.RecordErrorLatency("http", class, ms)
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, class)
		}
	}
}

func errorClass(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	if status >= http.StatusInternalServerError {
		return "server_error"
	}
	return "client_error"
}

// severity is high only for failures the caller cannot fix.
func severity(status int) string {
	switch {
	case status == http.StatusServiceUnavailable:
		return "medium"
	case status >= http.StatusInternalServerError:
		return "high"
	default:
		return "low"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

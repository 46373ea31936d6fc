package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/liamcoop/hypertension/internal/logger"
)

// requestLogger logs one structured line per request and feeds the HTTP counters
func requestLogger(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed.String(),
				"requestId", middleware.GetReqID(r.Context()),
				"remoteAddr", r.RemoteAddr,
			}

			switch {
			case status >= 500:
				logger.ErrorHttp5xx()
				logger.Logger.Error("request failed", attrs...)
			case status >= 400:
				logger.WarnHttp4xx(status)
				logger.Logger.Warn("request rejected", attrs...)
			case slow > 0 && elapsed > slow:
				logger.WarnSlowRequest()
				logger.Logger.Warn("slow request", attrs...)
			default:
				logger.Info("request", attrs...)
			}
		})
	}
}

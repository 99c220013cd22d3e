package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware.
func NewRouter(
	ingestH *IngestHandler,
	queryH *QueryHandler,
	inquiryH *InquiryHandler,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Ingestion routes.
	r.Post("/trades", ingestH.BookTrade)
	r.Post("/marketdata", ingestH.PublishBook)
	r.Post("/prices", ingestH.PublishPrice)

	// Inquiry routes.
	r.Post("/inquiries", inquiryH.Create)
	r.Get("/inquiries/{inquiry_id}", inquiryH.Get)
	r.Post("/inquiries/{inquiry_id}/quote", inquiryH.SendQuote)
	r.Post("/inquiries/{inquiry_id}/reject", inquiryH.Reject)

	// Query routes.
	r.Get("/trades/{trade_id}", queryH.GetTrade)
	r.Get("/positions/{product_id}", queryH.GetPosition)
	r.Get("/risk/buckets/{bucket}", queryH.GetBucketedRisk)
	r.Get("/risk/{product_id}", queryH.GetRisk)
	r.Get("/marketdata/{product_id}/bbo", queryH.GetBestBidOffer)
	r.Get("/marketdata/{product_id}/depth", queryH.GetDepth)
	r.Get("/prices/{product_id}", queryH.GetPrice)
	r.Get("/streams/{product_id}", queryH.GetStream)
	r.Get("/executions/{order_id}", queryH.GetExecution)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT,
// and PATCH requests carrying a body. If the Content-Type header doesn't
// start with "application/json", it returns 400 Bad Request before the
// handler runs. Bodyless requests (e.g. inquiry reject) are exempt.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength != 0 {
				ct := r.Header.Get("Content-Type")
				if ct == "" || !strings.HasPrefix(ct, "application/json") {
					WriteError(w, http.StatusBadRequest, "invalid_request",
						"Content-Type must be application/json")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

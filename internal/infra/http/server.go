package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Spok95/production-bot/internal/domain/production"
	"github.com/Spok95/production-bot/internal/report"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const headerRequestID = "X-Request-ID"

type ProductionSource interface {
	Get(ctx context.Context) (production.Snapshot, error)
}

type Server struct {
	srv *http.Server
	log *slog.Logger
	loc *time.Location
	now func() time.Time
}

// New служебный HTTP: /health, /metrics и выгрузка производства в xlsx.
// src == nil: выгрузка не регистрируется. loc == nil: даты в выгрузке по time.Local.
func New(addr string, exposeMetrics bool, src ProductionSource, loc *time.Location, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Server{log: log, loc: loc, now: time.Now}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(exposeMetrics, src),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) routes(exposeMetrics bool, src ProductionSource) http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLog)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	if src != nil {
		r.HandleFunc("/export/production.xlsx", s.exportProduction(src)).Methods(http.MethodGet)
	}
	return r
}

func (s *Server) exportProduction(src ProductionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := src.Get(r.Context())
		if err != nil {
			s.log.Error("production export: backend failed", "err", err, "request_id", w.Header().Get(headerRequestID))
			http.Error(w, "production data unavailable", http.StatusBadGateway)
			return
		}
		now := s.now().In(s.loc)
		data, err := report.ProductionWorkbook(snap, now)
		if err != nil {
			s.log.Error("production export: workbook failed", "err", err)
			http.Error(w, "failed to build workbook", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(now)+`"`)
		_, _ = w.Write(data)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLog проставляет X-Request-ID (берёт входящий, если есть) и пишет строку лога на запрос.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", id,
		)
	})
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	authorization "agritrace/contexts/identity-access/authorization-service"
	productinsights "agritrace/contexts/traceability/product-insights-service"
	recordledger "agritrace/contexts/traceability/record-ledger-service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "agritrace/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	ledger        recordledger.Module
	insights      productinsights.Module
	authorization authorization.Module
}

func New(
	ledger recordledger.Module,
	insights productinsights.Module,
	authorizationModule authorization.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		ledger:        ledger,
		insights:      insights,
		authorization: authorizationModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /api/trace/v1/records", s.handleListRecords)
	s.mux.HandleFunc("POST /api/trace/v1/records", s.handleCreateRecord)
	s.mux.HandleFunc("GET /api/trace/v1/records/{record_id}", s.handleGetRecord)
	s.mux.HandleFunc("POST /api/trace/v1/records/{record_id}/verify", s.handleVerifyRecord)

	s.mux.HandleFunc("GET /api/trace/v1/products", s.handleListProducts)
	s.mux.HandleFunc("GET /api/trace/v1/products/stats", s.handleCategoryStats)
	s.mux.HandleFunc("GET /api/trace/v1/products/search", s.handleSearchProducts)

	s.mux.HandleFunc("GET /api/authz/v1/event-types", s.handleListEventTypes)
	s.mux.HandleFunc("GET /api/authz/v1/event-types/creatable", s.handleListCreatableEventTypes)
	s.mux.HandleFunc("POST /api/authz/v1/validate-create", s.handleValidateCreate)
	s.mux.HandleFunc("POST /api/authz/v1/validate-edit", s.handleValidateEdit)
	s.mux.HandleFunc("POST /api/authz/v1/check", s.handleAuthzCheck)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

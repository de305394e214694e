package httpserver

import (
	"net/http"

	insightshttp "agritrace/contexts/traceability/product-insights-service/transport/http"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.insights.Handler.ListProductsHandler(r.Context(), "", "")
	if err != nil {
		writeInsightsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.insights.Handler.ListProductsHandler(
		r.Context(),
		query.Get("category"),
		query.Get("q"),
	)
	if err != nil {
		writeInsightsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.insights.Handler.CategoryStatsHandler(r.Context())
	if err != nil {
		writeInsightsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeInsightsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, insightshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

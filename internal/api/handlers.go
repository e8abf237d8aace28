package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"affinity-backend/internal/affinity"
	"affinity-backend/internal/errors"
	"affinity-backend/internal/logging"
	"affinity-backend/internal/models"
	"affinity-backend/internal/service"
	"affinity-backend/internal/state"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler wires the affinity engine and its collaborators to the HTTP API
type Handler struct {
	Store         *state.Store
	Loader        service.DatasetLoader
	Engine        *affinity.Engine
	ExportService *service.ExportService
}

func NewHandler(store *state.Store, loader service.DatasetLoader, engine *affinity.Engine, export *service.ExportService) *Handler {
	return &Handler{
		Store:         store,
		Loader:        loader,
		Engine:        engine,
		ExportService: export,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Post("/api/analyze", h.Analyze)
	r.Get("/api/rules", h.GetTopRules)
	r.Get("/api/recommendations/{product}", h.GetRecommendations)
	r.Get("/api/products", h.GetProducts)
	r.Get("/api/summary", h.GetSummary)
	r.Get("/api/status", h.GetStatus)
	r.Get("/api/export/rules.csv", h.ExportRules)
	r.Post("/api/reload", h.Reload)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Analysis
// ============================================================================

// Analyze loads the (cached) dataset snapshot, runs the full affinity
// pipeline over it and stores the result for the view endpoints.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, errors.Wrap(errors.TypeInvalidParameter, "invalid JSON body", err))
		return
	}

	minSupport := models.DefaultMinSupport
	if req.MinSupport != nil {
		minSupport = *req.MinSupport
	}
	minConfidence := models.DefaultMinConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}
	topK := models.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	// Reject bad parameters before any loading or computation
	if err := affinity.ValidateParams(minSupport, minConfidence, topK); err != nil {
		writeError(w, err)
		return
	}

	snapshot, err := h.Loader.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	h.Store.SetSnapshot(snapshot)

	result, err := h.Engine.Run(snapshot.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	top, err := affinity.TopRules(result, minSupport, minConfidence, topK)
	if err != nil {
		writeError(w, err)
		return
	}

	run := &state.AnalysisRun{
		Result:          result,
		Top:             top,
		MinSupport:      minSupport,
		MinConfidence:   minConfidence,
		TopK:            topK,
		SnapshotVersion: snapshot.Version,
		RanAt:           time.Now().UTC(),
	}
	h.Store.SetRun(run)

	logging.Info("analysis complete",
		zap.String("snapshot", snapshot.Version),
		zap.Int("baskets", result.Freq.TotalBaskets),
		zap.Int("rules", len(result.Rules)),
		zap.Int("top", len(top)))

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{
		Message:         "analysis completed successfully",
		SnapshotVersion: snapshot.Version,
		Transactions:    result.Freq.TotalBaskets,
		Products:        len(snapshot.ProductNames()),
		RuleCount:       len(result.Rules),
		StrongRules:     len(top),
		TopRules:        toRuleRows(top, true),
	})
}

// GetTopRules returns the ranked top-K view over the stored result.
// Thresholds default to the ones the analysis ran with.
func (h *Handler) GetTopRules(w http.ResponseWriter, r *http.Request) {
	run := h.Store.Run()
	if run == nil {
		writeError(w, errors.NotFound("analysis result", "run /api/analyze first"))
		return
	}

	minSupport, err := floatParam(r, "min_support", run.MinSupport)
	if err != nil {
		writeError(w, err)
		return
	}
	minConfidence, err := floatParam(r, "min_confidence", run.MinConfidence)
	if err != nil {
		writeError(w, err)
		return
	}
	k, err := intParam(r, "k", run.TopK)
	if err != nil {
		writeError(w, err)
		return
	}

	top, err := affinity.TopRules(run.Result, minSupport, minConfidence, k)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleRows(top, true))
}

// GetRecommendations returns the per-product bidirectional view: the other
// member of each pair involving the product, with directional confidence.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	run := h.Store.Run()
	snapshot := h.Store.Snapshot()
	if run == nil || snapshot == nil {
		writeError(w, errors.NotFound("analysis result", "run /api/analyze first"))
		return
	}

	product := chi.URLParam(r, "product")
	if unescaped, err := url.PathUnescape(product); err == nil {
		product = unescaped
	}

	if !snapshotHasProduct(snapshot, product) {
		writeError(w, errors.NotFound("product", product))
		return
	}

	minSupport, err := floatParam(r, "min_support", run.MinSupport)
	if err != nil {
		writeError(w, err)
		return
	}
	minConfidence, err := floatParam(r, "min_confidence", run.MinConfidence)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(r, "limit", run.TopK)
	if err != nil {
		writeError(w, err)
		return
	}
	if limit < 1 {
		writeError(w, errors.InvalidParameter("limit", limit, "positive integers"))
		return
	}

	recs, err := affinity.RecommendationsFor(run.Result, product, minSupport, minConfidence)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	rows := make([]models.RecommendationRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, models.RecommendationRow{
			RecommendedProduct: rec.Product,
			Support:            affinity.Round4(rec.Support),
			Confidence:         affinity.Round4(rec.Confidence),
			Lift:               affinity.Round4(rec.Lift),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// ============================================================================
// Dashboard views
// ============================================================================

// GetProducts returns the sorted distinct product names for the selector
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	snapshot := h.Store.Snapshot()
	if snapshot == nil {
		writeError(w, errors.NotFound("dataset", "run /api/analyze first"))
		return
	}
	writeJSON(w, http.StatusOK, snapshot.ProductNames())
}

// GetSummary returns the dashboard overview numbers and chart data
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	run := h.Store.Run()
	snapshot := h.Store.Snapshot()
	if run == nil || snapshot == nil {
		writeError(w, errors.NotFound("analysis result", "run /api/analyze first"))
		return
	}

	scatter := make([]models.ScatterPoint, 0, len(run.Result.Rules))
	for _, rule := range run.Result.Rules {
		scatter = append(scatter, models.ScatterPoint{
			Support:    affinity.Round4(rule.Support),
			Confidence: affinity.Round4(rule.Confidence),
		})
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{
		Transactions: run.Result.Freq.TotalBaskets,
		Products:     len(snapshot.ProductNames()),
		StrongRules:  len(run.Top),
		TopProducts:  topProductFrequencies(snapshot, 10),
		Scatter:      scatter,
	})
}

// GetStatus reports the loaded snapshot and stored result
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := models.StatusResponse{}

	if snapshot := h.Store.Snapshot(); snapshot != nil {
		resp.Dataset = models.DatasetStatus{
			Loaded:       true,
			Version:      snapshot.Version,
			LoadedAt:     snapshot.LoadedAt,
			Rows:         len(snapshot.Items),
			Products:     len(snapshot.ProductNames()),
			Transactions: snapshot.TransactionCount(),
		}
	}
	if run := h.Store.Run(); run != nil {
		resp.Result = models.ResultStatus{
			Present:         true,
			SnapshotVersion: run.SnapshotVersion,
			RanAt:           run.RanAt,
			RuleCount:       len(run.Result.Rules),
			MinSupport:      run.MinSupport,
			MinConfidence:   run.MinConfidence,
			TopK:            run.TopK,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// Export & reload
// ============================================================================

// ExportRules streams the stored top-K table as a CSV download
func (h *Handler) ExportRules(w http.ResponseWriter, r *http.Request) {
	run := h.Store.Run()
	if run == nil {
		writeError(w, errors.NotFound("analysis result", "run /api/analyze first"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="affinity_results.csv"`)
	if err := h.ExportService.WriteRules(w, run.Top); err != nil {
		logging.Error("export failed", zap.Error(err))
	}
}

// Reload drops the cached snapshot so the next analysis rereads the files
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.Loader.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"message": "dataset cache invalidated"})
}

// ============================================================================
// Helpers
// ============================================================================

func toRuleRows(rules []affinity.Rule, ranked bool) []models.RuleRow {
	rows := make([]models.RuleRow, 0, len(rules))
	for i, rule := range rules {
		row := models.RuleRow{
			ProductA:   rule.ItemA,
			ProductB:   rule.ItemB,
			Support:    affinity.Round4(rule.Support),
			Confidence: affinity.Round4(rule.Confidence),
			Lift:       affinity.Round4(rule.Lift),
		}
		if ranked {
			row.Rank = i + 1
		}
		rows = append(rows, row)
	}
	return rows
}

func topProductFrequencies(snapshot *models.Snapshot, limit int) []models.ProductFrequency {
	counts := make(map[string]int)
	for _, item := range snapshot.Items {
		counts[item.ProductName]++
	}

	freqs := make([]models.ProductFrequency, 0, len(counts))
	for product, count := range counts {
		freqs = append(freqs, models.ProductFrequency{Product: product, Count: count})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Product < freqs[j].Product
	})

	if len(freqs) > limit {
		freqs = freqs[:limit]
	}
	return freqs
}

func snapshotHasProduct(snapshot *models.Snapshot, product string) bool {
	for _, item := range snapshot.Items {
		if item.ProductName == product {
			return true
		}
	}
	return false
}

func floatParam(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.InvalidParameter(name, raw, "[0,1]")
	}
	return v, nil
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidParameter(name, raw, "positive integers")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	errType := errors.TypeOf(err)

	status := http.StatusInternalServerError
	switch errType {
	case errors.TypeInvalidParameter, errors.TypeMissingField:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeEmptyDataset:
		status = http.StatusUnprocessableEntity
	case errors.TypeDataLoad:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, models.ErrorResponse{
		Type:    string(errType),
		Message: err.Error(),
	})
}

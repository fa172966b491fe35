package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"benefitscout/internal/benefits/directory"
	"benefitscout/internal/eligibility"
	"benefitscout/internal/eligibility/service"
	id "benefitscout/pkg/domain"
	dErrors "benefitscout/pkg/domain-errors"
	"benefitscout/pkg/platform/httputil"
	"benefitscout/pkg/requestcontext"
)

// Service defines the eligibility operations the handler needs.
type Service interface {
	CheckAll(ctx context.Context, userID id.UserID) (*service.Report, error)
	CheckOne(ctx context.Context, userID id.UserID, program string) (eligibility.ProgramID, eligibility.ProgramResult, error)
	Evaluate(ctx context.Context, profile eligibility.Profile, programs []string) (*service.Report, error)
	Calculate(ctx context.Context, in eligibility.CalculationInput) (eligibility.CalculationResult, error)
}

// Handler wires eligibility, calculator and directory endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts endpoints that require an authenticated user.
func (h *Handler) Register(r chi.Router) {
	r.Get("/eligibility", h.HandleCheckAll)
	r.Get("/eligibility/{program}", h.HandleCheckOne)
	r.Post("/benefits/calculate", h.HandleCalculate)
	r.Get("/benefits", h.HandleListCategories)
	r.Get("/benefits/{category}", h.HandleDirectory)
}

// RegisterPublic mounts the stateless screening endpoint, which works with
// or without a user.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/eligibility/evaluate", h.HandleEvaluate)
}

// HandleCheckAll handles GET /eligibility.
func (h *Handler) HandleCheckAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	report, err := h.service.CheckAll(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "eligibility check failed", requestID, err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "eligibility checked",
		"request_id", requestID,
		"user_id", userID,
		"eligible_count", report.Summary.EligibleCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandleCheckOne handles GET /eligibility/{program}.
func (h *Handler) HandleCheckOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	program := chi.URLParam(r, "program")

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	_, result, err := h.service.CheckOne(ctx, userID, program)
	if err != nil {
		h.logFailure(ctx, "program eligibility check failed", requestID, err, "user_id", userID, "program", program)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProgramResult(result))
}

// HandleEvaluate handles POST /eligibility/evaluate.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Evaluate(ctx, req.Profile(), req.Programs)
	if err != nil {
		h.logFailure(ctx, "eligibility screening failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "eligibility screened",
		"request_id", requestID,
		"programs", len(report.Results),
		"eligible_count", report.Summary.EligibleCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandleCalculate handles POST /benefits/calculate.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CalculateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Calculate(ctx, req.Input())
	if err != nil {
		h.logFailure(ctx, "benefit calculation failed", requestID, err, "type", req.Type)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCalculation(result))
}

// HandleListCategories handles GET /benefits.
func (h *Handler) HandleListCategories(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: directory.Categories()})
}

// HandleDirectory handles GET /benefits/{category}.
func (h *Handler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	programs, err := directory.Lookup(category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DirectoryResponse{Category: category, Programs: programs})
}

// logFailure logs at warn for client errors and error for everything else.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error, attrs ...any) {
	args := append([]any{"request_id", requestID, "error", err}, attrs...)
	if de, ok := dErrors.As(err); ok && httputil.StatusFor(de.Code) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}

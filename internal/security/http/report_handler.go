package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientguard/clientguard/internal/httputil"
	"github.com/clientguard/clientguard/internal/security/http/dto"
	securityUseCase "github.com/clientguard/clientguard/internal/security/usecase"
)

// ReportHandler handles HTTP requests for the aggregated security report.
type ReportHandler struct {
	eventUseCase securityUseCase.SecurityEventUseCase
	recorder     *Recorder
	logger       *slog.Logger
}

// NewReportHandler creates a new security report handler with required dependencies.
func NewReportHandler(
	eventUseCase securityUseCase.SecurityEventUseCase,
	recorder *Recorder,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		eventUseCase: eventUseCase,
		recorder:     recorder,
		logger:       logger,
	}
}

// ReportHandler aggregates the audit trail into total/denied/allowed counts
// with a per-action breakdown ordered by action name.
// GET /clients/security/report
// Requires the Admin role. The report request itself is not audited beyond
// the admin check, reading the trail must not grow it.
func (h *ReportHandler) ReportHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	report, err := h.eventUseCase.Report(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReportToResponse(report))
}

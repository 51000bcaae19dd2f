package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/clientguard/clientguard/internal/security/http/dto"
	securityUseCase "github.com/clientguard/clientguard/internal/security/usecase"
)

// RunSecurityReport prints the aggregated security report: total, denied, and
// allowed event counts with a per-action breakdown ordered by action name.
//
// Requirements: Database must be migrated and accessible.
func RunSecurityReport(
	ctx context.Context,
	eventUseCase securityUseCase.SecurityEventUseCase,
	logger *slog.Logger,
	format string,
	ioTuple IOTuple,
) error {
	report, err := eventUseCase.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to build security report: %w", err)
	}

	if format == "json" {
		jsonBytes, err := json.MarshalIndent(dto.MapReportToResponse(report), "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintln(ioTuple.Writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(ioTuple.Writer, "Total events: %d\n", report.TotalEvents)
		_, _ = fmt.Fprintf(ioTuple.Writer, "Denied:       %d\n", report.Denied)
		_, _ = fmt.Fprintf(ioTuple.Writer, "Allowed:      %d\n", report.Allowed)
		if len(report.ByAction) > 0 {
			_, _ = fmt.Fprintln(ioTuple.Writer, "\nBy action:")
			for _, breakdown := range report.ByAction {
				_, _ = fmt.Fprintf(ioTuple.Writer, "  %-24s total=%d denied=%d allowed=%d\n",
					breakdown.Action, breakdown.Total, breakdown.Denied, breakdown.Allowed)
			}
		}
	}

	logger.Info("security report generated",
		slog.Int64("total_events", report.TotalEvents),
		slog.Int64("denied", report.Denied),
		slog.Int64("allowed", report.Allowed),
	)

	return nil
}

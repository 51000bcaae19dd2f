// Package dto provides data transfer objects for security report responses.
package dto

import (
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// ActionBreakdownResponse represents per-action event counts in API responses.
type ActionBreakdownResponse struct {
	Action  string `json:"action"`
	Total   int64  `json:"total"`
	Denied  int64  `json:"denied"`
	Allowed int64  `json:"allowed"`
}

// ReportResponse represents the aggregated security report in API responses.
type ReportResponse struct {
	TotalEvents int64                     `json:"total_events"`
	Denied      int64                     `json:"denied"`
	Allowed     int64                     `json:"allowed"`
	ByAction    []ActionBreakdownResponse `json:"by_action"`
}

// MapReportToResponse converts a domain security report to an API response.
func MapReportToResponse(report *securityDomain.SecurityReport) ReportResponse {
	byAction := make([]ActionBreakdownResponse, 0, len(report.ByAction))
	for _, breakdown := range report.ByAction {
		byAction = append(byAction, ActionBreakdownResponse{
			Action:  breakdown.Action,
			Total:   breakdown.Total,
			Denied:  breakdown.Denied,
			Allowed: breakdown.Allowed,
		})
	}
	return ReportResponse{
		TotalEvents: report.TotalEvents,
		Denied:      report.Denied,
		Allowed:     report.Allowed,
		ByAction:    byAction,
	}
}

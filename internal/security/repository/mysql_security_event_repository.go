package repository

import (
	"context"
	"database/sql"

	"github.com/clientguard/clientguard/internal/database"
	apperrors "github.com/clientguard/clientguard/internal/errors"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// MySQLSecurityEventRepository implements SecurityEvent persistence for MySQL.
// User references are stored as CHAR(36) with transaction support via database.GetTx().
type MySQLSecurityEventRepository struct {
	db *sql.DB
}

// Create inserts a new SecurityEvent into the MySQL database. Handles a nil
// user reference as database NULL.
func (m *MySQLSecurityEventRepository) Create(
	ctx context.Context,
	event *securityDomain.SecurityEvent,
) error {
	querier := database.GetTx(ctx, m.db)

	var userID any
	if event.UserID != nil {
		userID = event.UserID.String()
	}

	query := `INSERT INTO security_events (id, request_id, user_id, role, path, method, ip, action, allowed, detail, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID.String(),
		event.RequestID,
		userID,
		event.Role,
		event.Path,
		event.Method,
		event.IP,
		event.Action,
		event.Allowed,
		event.Detail,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create security event")
	}

	return nil
}

// Aggregate computes the overall and per-action allowed/denied counts across
// all recorded security events. MySQL lacks filtered aggregates, so the
// denied/allowed splits use SUM over boolean conditions instead.
func (m *MySQLSecurityEventRepository) Aggregate(
	ctx context.Context,
) (*securityDomain.SecurityReport, error) {
	querier := database.GetTx(ctx, m.db)

	report := &securityDomain.SecurityReport{
		ByAction: make([]securityDomain.ActionBreakdown, 0),
	}

	totalsQuery := `SELECT COUNT(*),
						   COALESCE(SUM(CASE WHEN allowed THEN 0 ELSE 1 END), 0),
						   COALESCE(SUM(CASE WHEN allowed THEN 1 ELSE 0 END), 0)
					FROM security_events`

	err := querier.QueryRowContext(ctx, totalsQuery).Scan(
		&report.TotalEvents,
		&report.Denied,
		&report.Allowed,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to aggregate security events")
	}

	byActionQuery := `SELECT action,
							 COUNT(*),
							 SUM(CASE WHEN allowed THEN 0 ELSE 1 END),
							 SUM(CASE WHEN allowed THEN 1 ELSE 0 END)
					  FROM security_events
					  GROUP BY action
					  ORDER BY action ASC`

	rows, err := querier.QueryContext(ctx, byActionQuery)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to aggregate security events by action")
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var breakdown securityDomain.ActionBreakdown
		err := rows.Scan(
			&breakdown.Action,
			&breakdown.Total,
			&breakdown.Denied,
			&breakdown.Allowed,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan action breakdown")
		}
		report.ByAction = append(report.ByAction, breakdown)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate action breakdowns")
	}

	return report, nil
}

// NewMySQLSecurityEventRepository creates a new MySQL SecurityEvent repository.
func NewMySQLSecurityEventRepository(db *sql.DB) *MySQLSecurityEventRepository {
	return &MySQLSecurityEventRepository{db: db}
}

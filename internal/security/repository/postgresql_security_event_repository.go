// Package repository implements data persistence for security events.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Events are append-only: the write path only inserts, the
// reporting path only aggregates.
package repository

import (
	"context"
	"database/sql"

	"github.com/clientguard/clientguard/internal/database"
	apperrors "github.com/clientguard/clientguard/internal/errors"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// PostgreSQLSecurityEventRepository implements SecurityEvent persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLSecurityEventRepository struct {
	db *sql.DB
}

// Create inserts a new SecurityEvent into the PostgreSQL database. Handles a
// nil user reference as database NULL.
func (p *PostgreSQLSecurityEventRepository) Create(
	ctx context.Context,
	event *securityDomain.SecurityEvent,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO security_events (id, request_id, user_id, role, path, method, ip, action, allowed, detail, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.RequestID,
		event.UserID,
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
// all recorded security events. The per-action breakdown is ordered by action
// name ascending. Returns a zero-valued report when no events exist.
func (p *PostgreSQLSecurityEventRepository) Aggregate(
	ctx context.Context,
) (*securityDomain.SecurityReport, error) {
	querier := database.GetTx(ctx, p.db)

	report := &securityDomain.SecurityReport{
		ByAction: make([]securityDomain.ActionBreakdown, 0),
	}

	totalsQuery := `SELECT COUNT(*),
						   COUNT(*) FILTER (WHERE NOT allowed),
						   COUNT(*) FILTER (WHERE allowed)
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
							 COUNT(*) FILTER (WHERE NOT allowed),
							 COUNT(*) FILTER (WHERE allowed)
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

// NewPostgreSQLSecurityEventRepository creates a new PostgreSQL SecurityEvent repository.
func NewPostgreSQLSecurityEventRepository(db *sql.DB) *PostgreSQLSecurityEventRepository {
	return &PostgreSQLSecurityEventRepository{db: db}
}

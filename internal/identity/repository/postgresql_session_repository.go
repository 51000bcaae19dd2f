// Package repository implements data persistence for sessions.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(), plus an in-memory store for tests and local development.
// PostgreSQL uses native UUID and JSONB types, MySQL uses CHAR(36) and JSON.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/clientguard/clientguard/internal/database"
	apperrors "github.com/clientguard/clientguard/internal/errors"
	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// PostgreSQLSessionRepository implements Session persistence for PostgreSQL.
// Claims and linked identities are stored as JSONB.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session into the PostgreSQL database.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *identityDomain.Session) error {
	querier := database.GetTx(ctx, p.db)

	claimsJSON, linkedJSON, err := marshalSessionPayloads(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (id, user_id, authenticated, claims, linked_identities, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.Authenticated,
		claimsJSON,
		linkedJSON,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create session")
	}
	return nil
}

// Get retrieves a Session by ID from the PostgreSQL database.
func (p *PostgreSQLSessionRepository) Get(
	ctx context.Context,
	sessionID string,
) (*identityDomain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, authenticated, claims, linked_identities, created_at, expires_at
			  FROM sessions WHERE id = $1`

	var session identityDomain.Session
	var userID uuid.NullUUID
	var claimsJSON, linkedJSON []byte

	err := querier.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&userID,
		&session.Authenticated,
		&claimsJSON,
		&linkedJSON,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}

	if userID.Valid {
		session.UserID = &userID.UUID
	}
	if err := unmarshalSessionPayloads(&session, claimsJSON, linkedJSON); err != nil {
		return nil, err
	}

	return &session, nil
}

// Delete removes a Session by ID from the PostgreSQL database.
func (p *PostgreSQLSessionRepository) Delete(ctx context.Context, sessionID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, sessionID); err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}
	return nil
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL Session repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}

// marshalSessionPayloads encodes the claims and linked-identity payloads as JSON.
// Nil payloads are stored as database NULLs.
func marshalSessionPayloads(session *identityDomain.Session) (claimsJSON, linkedJSON []byte, err error) {
	if session.Claims != nil {
		claimsJSON, err = json.Marshal(session.Claims)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "failed to marshal session claims")
		}
	}
	if session.LinkedIdentities != nil {
		linkedJSON, err = json.Marshal(session.LinkedIdentities)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "failed to marshal session linked identities")
		}
	}
	return claimsJSON, linkedJSON, nil
}

// unmarshalSessionPayloads decodes the claims and linked-identity payloads,
// treating NULLs as absent.
func unmarshalSessionPayloads(session *identityDomain.Session, claimsJSON, linkedJSON []byte) error {
	if claimsJSON != nil {
		if err := json.Unmarshal(claimsJSON, &session.Claims); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal session claims")
		}
	}
	if linkedJSON != nil {
		if err := json.Unmarshal(linkedJSON, &session.LinkedIdentities); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal session linked identities")
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/clientguard/clientguard/internal/database"
	apperrors "github.com/clientguard/clientguard/internal/errors"
	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// MySQLSessionRepository implements Session persistence for MySQL.
// Claims and linked identities are stored as JSON, user IDs as CHAR(36).
type MySQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new Session into the MySQL database.
func (m *MySQLSessionRepository) Create(ctx context.Context, session *identityDomain.Session) error {
	querier := database.GetTx(ctx, m.db)

	claimsJSON, linkedJSON, err := marshalSessionPayloads(session)
	if err != nil {
		return err
	}

	var userID any
	if session.UserID != nil {
		userID = session.UserID.String()
	}

	query := `INSERT INTO sessions (id, user_id, authenticated, claims, linked_identities, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		session.ID,
		userID,
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

// Get retrieves a Session by ID from the MySQL database.
func (m *MySQLSessionRepository) Get(
	ctx context.Context,
	sessionID string,
) (*identityDomain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, authenticated, claims, linked_identities, created_at, expires_at
			  FROM sessions WHERE id = ?`

	var session identityDomain.Session
	var userID sql.NullString
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
		parsed, err := uuid.Parse(userID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse session user id")
		}
		session.UserID = &parsed
	}
	if err := unmarshalSessionPayloads(&session, claimsJSON, linkedJSON); err != nil {
		return nil, err
	}

	return &session, nil
}

// Delete removes a Session by ID from the MySQL database.
func (m *MySQLSessionRepository) Delete(ctx context.Context, sessionID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM sessions WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, sessionID); err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}
	return nil
}

// NewMySQLSessionRepository creates a new MySQL Session repository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

// Package repository implements data persistence for client records.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Unique constraint violations on email and document_id map
// to ErrClientAlreadyExists.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
	"github.com/clientguard/clientguard/internal/database"
	apperrors "github.com/clientguard/clientguard/internal/errors"
)

// PostgreSQLClientRepository implements Client persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client record.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, name, email, phone, address, document_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.DocumentID,
		client.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return clientsDomain.ErrClientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create client")
	}

	return nil
}

// Get retrieves a client record by ID. Returns ErrClientNotFound if not found.
func (p *PostgreSQLClientRepository) Get(
	ctx context.Context,
	clientID uuid.UUID,
) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, phone, address, document_id, created_at
			  FROM clients WHERE id = $1`

	var client clientsDomain.Client
	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.DocumentID,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientsDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	return &client, nil
}

// Update overwrites a client record's mutable fields.
// Returns ErrClientNotFound if the record does not exist.
func (p *PostgreSQLClientRepository) Update(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients
			  SET name = $2, email = $3, phone = $4, address = $5, document_id = $6
			  WHERE id = $1`

	result, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.DocumentID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return clientsDomain.ErrClientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update client")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return clientsDomain.ErrClientNotFound
	}

	return nil
}

// Delete removes a client record by ID.
// Returns ErrClientNotFound if the record does not exist.
func (p *PostgreSQLClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM clients WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, clientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return clientsDomain.ErrClientNotFound
	}

	return nil
}

// List retrieves all client records ordered by ID ascending. UUIDv7 IDs are
// time-ordered, so this matches creation order. Returns an empty slice when
// the registry is empty.
func (p *PostgreSQLClientRepository) List(ctx context.Context) ([]*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, phone, address, document_id, created_at
			  FROM clients
			  ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	clients := make([]*clientsDomain.Client, 0)
	for rows.Next() {
		var client clientsDomain.Client
		err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.DocumentID,
			&client.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client")
		}
		clients = append(clients, &client)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}

	return clients, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLClientRepository creates a new PostgreSQL Client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

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

// MySQLClientRepository implements Client persistence for MySQL.
// IDs are stored as CHAR(36) with transaction support via database.GetTx().
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client record.
func (m *MySQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (id, name, email, phone, address, document_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID.String(),
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.DocumentID,
		client.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return clientsDomain.ErrClientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create client")
	}

	return nil
}

// Get retrieves a client record by ID. Returns ErrClientNotFound if not found.
func (m *MySQLClientRepository) Get(
	ctx context.Context,
	clientID uuid.UUID,
) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, phone, address, document_id, created_at
			  FROM clients WHERE id = ?`

	var client clientsDomain.Client
	var id string
	err := querier.QueryRowContext(ctx, query, clientID.String()).Scan(
		&id,
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

	client.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse client id")
	}

	return &client, nil
}

// Update overwrites a client record's mutable fields.
// Returns ErrClientNotFound if the record does not exist.
func (m *MySQLClientRepository) Update(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE clients
			  SET name = ?, email = ?, phone = ?, address = ?, document_id = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.DocumentID,
		client.ID.String(),
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (m *MySQLClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM clients WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, clientID.String())
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

// List retrieves all client records ordered by ID ascending.
// Returns an empty slice when the registry is empty.
func (m *MySQLClientRepository) List(ctx context.Context) ([]*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

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
		var id string
		err := rows.Scan(
			&id,
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

		client.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse client id")
		}

		clients = append(clients, &client)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}

	return clients, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

// Package usecase defines business logic interfaces for the client registry.
package usecase

import (
	"context"

	"github.com/google/uuid"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
)

// ClientRepository defines persistence operations for client records.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create inserts a new client record. Returns ErrClientAlreadyExists when
	// the email or document ID collides with an existing record.
	Create(ctx context.Context, client *clientsDomain.Client) error

	// Get retrieves a client record by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error)

	// Update overwrites a client record's mutable fields.
	// Returns ErrClientNotFound if the record does not exist.
	Update(ctx context.Context, client *clientsDomain.Client) error

	// Delete removes a client record by ID.
	// Returns ErrClientNotFound if the record does not exist.
	Delete(ctx context.Context, clientID uuid.UUID) error

	// List retrieves all client records ordered by ID ascending.
	List(ctx context.Context) ([]*clientsDomain.Client, error)
}

// ClientUseCase defines business logic operations for the client registry.
type ClientUseCase interface {
	// Create persists a new client record and returns it with its generated ID.
	Create(ctx context.Context, input *clientsDomain.CreateClientInput) (*clientsDomain.Client, error)

	// Get retrieves a client record by ID.
	Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error)

	// Update applies a partial update to an existing client record.
	Update(ctx context.Context, clientID uuid.UUID, input *clientsDomain.UpdateClientInput) error

	// Delete removes a client record by ID.
	Delete(ctx context.Context, clientID uuid.UUID) error

	// List retrieves all client records ordered by creation.
	List(ctx context.Context) ([]*clientsDomain.Client, error)
}

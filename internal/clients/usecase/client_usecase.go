// Package usecase implements business logic orchestration for the client registry.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
	"github.com/clientguard/clientguard/internal/database"
)

// clientUseCase implements ClientUseCase.
type clientUseCase struct {
	txManager  database.TxManager
	clientRepo ClientRepository
}

// Create persists a new client record. Generates a UUIDv7 identifier so that
// ID order matches creation order, and a UTC creation timestamp.
func (c *clientUseCase) Create(
	ctx context.Context,
	input *clientsDomain.CreateClientInput,
) (*clientsDomain.Client, error) {
	client := &clientsDomain.Client{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		DocumentID: input.DocumentID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Get retrieves a client record by ID.
// Returns ErrClientNotFound if the record doesn't exist.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

// Update applies a partial update: stored values are read, the provided
// fields are overlaid, and the result is written back. The read-modify-write
// runs inside a transaction so concurrent updates cannot interleave.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	input *clientsDomain.UpdateClientInput,
) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		client, err := c.clientRepo.Get(ctx, clientID)
		if err != nil {
			return err
		}

		input.Apply(client)

		return c.clientRepo.Update(ctx, client)
	})
}

// Delete removes a client record by ID.
// Returns ErrClientNotFound if the record doesn't exist.
func (c *clientUseCase) Delete(ctx context.Context, clientID uuid.UUID) error {
	return c.clientRepo.Delete(ctx, clientID)
}

// List retrieves all client records ordered by creation.
// Returns empty slice if no clients found.
func (c *clientUseCase) List(ctx context.Context) ([]*clientsDomain.Client, error) {
	return c.clientRepo.List(ctx)
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(txManager database.TxManager, clientRepo ClientRepository) ClientUseCase {
	return &clientUseCase{
		txManager:  txManager,
		clientRepo: clientRepo,
	}
}

// Package domain defines the core entities for the client registry.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents one client record in the registry. Email and DocumentID
// are unique across the registry; Phone and Address may be blank.
type Client struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Address    string
	DocumentID string
	CreatedAt  time.Time
}

// CreateClientInput contains the parameters for creating a new client record.
type CreateClientInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	DocumentID string
}

// UpdateClientInput contains the parameters for a partial client update.
// Nil fields are left untouched; non-nil fields overwrite the stored value,
// including with an empty string.
type UpdateClientInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	DocumentID *string
}

// Empty reports whether the update carries no recognized fields.
func (u *UpdateClientInput) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Address == nil && u.DocumentID == nil
}

// Apply overwrites the client's fields with the update's non-nil values.
func (u *UpdateClientInput) Apply(client *Client) {
	if u.Name != nil {
		client.Name = *u.Name
	}
	if u.Email != nil {
		client.Email = *u.Email
	}
	if u.Phone != nil {
		client.Phone = *u.Phone
	}
	if u.Address != nil {
		client.Address = *u.Address
	}
	if u.DocumentID != nil {
		client.DocumentID = *u.DocumentID
	}
}

// Package dto provides data transfer objects for client HTTP requests
// and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
	appValidation "github.com/clientguard/clientguard/internal/validation"
)

// CreateClientRequest carries the form fields of a client creation request.
type CreateClientRequest struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	DocumentID string
}

// Validate checks that the required fields are present and within the
// column limits.
func (r *CreateClientRequest) Validate() error {
	return appValidation.WrapValidationError(validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, appValidation.NotBlank, appValidation.Email, validation.Length(1, 254)),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.DocumentID, validation.Required, appValidation.NotBlank, validation.Length(1, 64)),
	))
}

// ToCreateClientInput converts the request to a domain input.
func (r *CreateClientRequest) ToCreateClientInput() *clientsDomain.CreateClientInput {
	return &clientsDomain.CreateClientInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		DocumentID: r.DocumentID,
	}
}

// UpdateClientRequest carries the form fields of a client update request.
// A nil field means the field was absent from the form and keeps its
// current value.
type UpdateClientRequest struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	DocumentID *string
}

// Empty reports whether no field was provided at all.
func (r *UpdateClientRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Address == nil && r.DocumentID == nil
}

// ToUpdateClientInput converts the request to a domain input.
func (r *UpdateClientRequest) ToUpdateClientInput() *clientsDomain.UpdateClientInput {
	return &clientsDomain.UpdateClientInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		DocumentID: r.DocumentID,
	}
}

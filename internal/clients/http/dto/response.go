package dto

import (
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
)

// ClientResponse represents a client record in API responses.
type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	DocumentID string    `json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListClientsResponse wraps the client collection in API responses.
type ListClientsResponse struct {
	Results []ClientResponse `json:"results"`
}

// MapClientToResponse converts a domain client to an API response.
func MapClientToResponse(client *clientsDomain.Client) ClientResponse {
	return ClientResponse{
		ID:         client.ID,
		Name:       client.Name,
		Email:      client.Email,
		Phone:      client.Phone,
		Address:    client.Address,
		DocumentID: client.DocumentID,
		CreatedAt:  client.CreatedAt,
	}
}

// MapClientsToListResponse converts a collection of domain clients to an
// API response.
func MapClientsToListResponse(clients []*clientsDomain.Client) ListClientsResponse {
	results := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		results = append(results, MapClientToResponse(client))
	}
	return ListClientsResponse{Results: results}
}

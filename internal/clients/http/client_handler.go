// Package http provides Gin handlers for the client record endpoints.
//
// Every handler runs behind the access gate and starts with the admin role
// check. The matching security event is written before the response goes out,
// both for granted operations and for rejected input.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientsDomain "github.com/clientguard/clientguard/internal/clients/domain"
	"github.com/clientguard/clientguard/internal/clients/http/dto"
	clientsUseCase "github.com/clientguard/clientguard/internal/clients/usecase"
	"github.com/clientguard/clientguard/internal/httputil"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
	securityHTTP "github.com/clientguard/clientguard/internal/security/http"
)

// ClientHandler handles HTTP requests for client record operations.
type ClientHandler struct {
	clientUseCase clientsUseCase.ClientUseCase
	recorder      *securityHTTP.Recorder
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler with required dependencies.
func NewClientHandler(
	clientUseCase clientsUseCase.ClientUseCase,
	recorder *securityHTTP.Recorder,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUseCase,
		recorder:      recorder,
		logger:        logger,
	}
}

// ListHandler returns every client record ordered by creation.
// GET /clients
func (h *ClientHandler) ListHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	clients, err := h.clientUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recorder.Record(c, securityDomain.ActionListClients, true, "")
	c.JSON(http.StatusOK, dto.MapClientsToListResponse(clients))
}

// DetailHandler returns a single client record.
// GET /clients/:id
func (h *ClientHandler) DetailHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed identifier cannot match any record.
		httputil.HandleErrorGin(c, clientsDomain.ErrClientNotFound, h.logger)
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recorder.Record(c, securityDomain.ActionDetailClient, true, "")
	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// CreateHandler creates a client record from form fields. Name, email, and
// document id are required; phone and address default to empty.
// POST /clients/create
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	request := &dto.CreateClientRequest{
		Name:       strings.TrimSpace(c.PostForm("name")),
		Email:      strings.TrimSpace(c.PostForm("email")),
		Phone:      strings.TrimSpace(c.PostForm("phone")),
		Address:    strings.TrimSpace(c.PostForm("address")),
		DocumentID: strings.TrimSpace(c.PostForm("document_id")),
	}
	if err := request.Validate(); err != nil {
		h.recorder.Record(c, securityDomain.ActionCreateClientInvalid, false, "missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing required fields."})
		return
	}

	client, err := h.clientUseCase.Create(c.Request.Context(), request.ToCreateClientInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recorder.Record(c, securityDomain.ActionCreateClient, true, "")
	c.JSON(http.StatusCreated, gin.H{"id": client.ID})
}

// UpdateHandler applies the provided form fields to a client record. Only
// fields present in the form are touched, and a present field is applied
// even when its trimmed value is empty. A request with no known field at
// all is rejected.
// POST/PUT/PATCH /clients/:id/update
func (h *ClientHandler) UpdateHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, clientsDomain.ErrClientNotFound, h.logger)
		return
	}

	request := &dto.UpdateClientRequest{
		Name:       formField(c, "name"),
		Email:      formField(c, "email"),
		Phone:      formField(c, "phone"),
		Address:    formField(c, "address"),
		DocumentID: formField(c, "document_id"),
	}
	if request.Empty() {
		h.recorder.Record(c, securityDomain.ActionUpdateClientInvalid, false, "no fields provided")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "no fields provided"})
		return
	}

	if err := h.clientUseCase.Update(c.Request.Context(), clientID, request.ToUpdateClientInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recorder.Record(c, securityDomain.ActionUpdateClient, true, "")
	c.JSON(http.StatusOK, gin.H{"detail": "updated"})
}

// DeleteHandler removes a client record. The audit trail is never pruned
// along with it.
// DELETE /clients/:id/delete
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	if !h.recorder.RequireAdmin(c) {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, clientsDomain.ErrClientNotFound, h.logger)
		return
	}

	if err := h.clientUseCase.Delete(c.Request.Context(), clientID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.recorder.Record(c, securityDomain.ActionDeleteClient, true, "")
	c.JSON(http.StatusOK, gin.H{"detail": "deleted"})
}

// formField returns the trimmed form value when the field is present in the
// request and nil when it is absent, preserving the difference between an
// omitted field and one set to empty.
func formField(c *gin.Context, name string) *string {
	value, ok := c.GetPostForm(name)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(value)
	return &trimmed
}

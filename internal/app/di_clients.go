package app

import (
	"fmt"
	"sync"

	clientsHTTP "github.com/clientguard/clientguard/internal/clients/http"
	clientsRepository "github.com/clientguard/clientguard/internal/clients/repository"
	clientsUseCase "github.com/clientguard/clientguard/internal/clients/usecase"
)

// clientsComponents groups the lazily initialized client context dependencies.
type clientsComponents struct {
	repoInit    sync.Once
	repo        clientsUseCase.ClientRepository
	useCaseInit sync.Once
	useCase     clientsUseCase.ClientUseCase
	handlerInit sync.Once
	handler     *clientsHTTP.ClientHandler
}

// ClientRepository returns the client repository instance.
func (c *Container) ClientRepository() (clientsUseCase.ClientRepository, error) {
	var err error
	c.clients.repoInit.Do(func() {
		c.clients.repo, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepo"]; exists {
		return nil, storedErr
	}
	return c.clients.repo, nil
}

// ClientUseCase returns the client use case instance.
func (c *Container) ClientUseCase() (clientsUseCase.ClientUseCase, error) {
	var err error
	c.clients.useCaseInit.Do(func() {
		c.clients.useCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clients.useCase, nil
}

// ClientHandler returns the client HTTP handler instance.
func (c *Container) ClientHandler() (*clientsHTTP.ClientHandler, error) {
	var err error
	c.clients.handlerInit.Do(func() {
		c.clients.handler, err = c.initClientHandler()
		if err != nil {
			c.initErrors["clientHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientHandler"]; exists {
		return nil, storedErr
	}
	return c.clients.handler, nil
}

// initClientRepository creates the client repository instance.
func (c *Container) initClientRepository() (clientsUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return clientsRepository.NewMySQLClientRepository(db), nil
	case "postgres":
		return clientsRepository.NewPostgreSQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initClientUseCase creates the client use case with all its dependencies.
func (c *Container) initClientUseCase() (clientsUseCase.ClientUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for client use case: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	return clientsUseCase.NewClientUseCase(txManager, clientRepo), nil
}

// initClientHandler creates the client HTTP handler with all its dependencies.
func (c *Container) initClientHandler() (*clientsHTTP.ClientHandler, error) {
	clientUseCase, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for client handler: %w", err)
	}

	recorder, err := c.SecurityRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get security recorder for client handler: %w", err)
	}

	return clientsHTTP.NewClientHandler(clientUseCase, recorder, c.Logger()), nil
}

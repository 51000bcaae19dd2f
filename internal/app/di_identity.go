package app

import (
	"fmt"
	"sync"

	identityRepository "github.com/clientguard/clientguard/internal/identity/repository"
	identityUseCase "github.com/clientguard/clientguard/internal/identity/usecase"
)

// identityComponents groups the lazily initialized identity context dependencies.
type identityComponents struct {
	sessionRepoInit    sync.Once
	sessionRepo        identityUseCase.SessionRepository
	sessionUseCaseInit sync.Once
	sessionUseCase     identityUseCase.SessionUseCase
}

// SessionRepository returns the session repository instance.
func (c *Container) SessionRepository() (identityUseCase.SessionRepository, error) {
	var err error
	c.identity.sessionRepoInit.Do(func() {
		c.identity.sessionRepo, err = c.initSessionRepository()
		if err != nil {
			c.initErrors["sessionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionRepo"]; exists {
		return nil, storedErr
	}
	return c.identity.sessionRepo, nil
}

// SessionUseCase returns the session use case instance.
func (c *Container) SessionUseCase() (identityUseCase.SessionUseCase, error) {
	var err error
	c.identity.sessionUseCaseInit.Do(func() {
		c.identity.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.identity.sessionUseCase, nil
}

// initSessionRepository creates the session repository instance.
func (c *Container) initSessionRepository() (identityUseCase.SessionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLSessionRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLSessionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (identityUseCase.SessionUseCase, error) {
	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for session use case: %w", err)
	}

	return identityUseCase.NewSessionUseCase(sessionRepo, c.Logger()), nil
}

package app

import (
	"fmt"
	"sync"

	"github.com/clientguard/clientguard/internal/metrics"
	securityHTTP "github.com/clientguard/clientguard/internal/security/http"
	securityRepository "github.com/clientguard/clientguard/internal/security/repository"
	securityService "github.com/clientguard/clientguard/internal/security/service"
	securityUseCase "github.com/clientguard/clientguard/internal/security/usecase"
)

// securityComponents groups the lazily initialized security context dependencies.
type securityComponents struct {
	eventRepoInit    sync.Once
	eventRepo        securityUseCase.SecurityEventRepository
	eventUseCaseInit sync.Once
	eventUseCase     securityUseCase.SecurityEventUseCase
	roleResolverInit sync.Once
	roleResolver     securityService.RoleResolver
	recorderInit     sync.Once
	recorder         *securityHTTP.Recorder
	reportInit       sync.Once
	reportHandler    *securityHTTP.ReportHandler
}

// SecurityEventRepository returns the security event repository instance.
func (c *Container) SecurityEventRepository() (securityUseCase.SecurityEventRepository, error) {
	var err error
	c.security.eventRepoInit.Do(func() {
		c.security.eventRepo, err = c.initSecurityEventRepository()
		if err != nil {
			c.initErrors["securityEventRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["securityEventRepo"]; exists {
		return nil, storedErr
	}
	return c.security.eventRepo, nil
}

// SecurityEventUseCase returns the security event use case instance.
// When metrics are enabled the use case is wrapped with the gate decision counter.
func (c *Container) SecurityEventUseCase() (securityUseCase.SecurityEventUseCase, error) {
	var err error
	c.security.eventUseCaseInit.Do(func() {
		c.security.eventUseCase, err = c.initSecurityEventUseCase()
		if err != nil {
			c.initErrors["securityEventUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["securityEventUseCase"]; exists {
		return nil, storedErr
	}
	return c.security.eventUseCase, nil
}

// RoleResolver returns the role resolver for identity provider claims.
func (c *Container) RoleResolver() securityService.RoleResolver {
	c.security.roleResolverInit.Do(func() {
		c.security.roleResolver = securityService.NewRoleResolver(c.config.AuthClaimNamespace)
	})
	return c.security.roleResolver
}

// SecurityRecorder returns the security event recorder instance.
func (c *Container) SecurityRecorder() (*securityHTTP.Recorder, error) {
	var err error
	c.security.recorderInit.Do(func() {
		c.security.recorder, err = c.initSecurityRecorder()
		if err != nil {
			c.initErrors["securityRecorder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["securityRecorder"]; exists {
		return nil, storedErr
	}
	return c.security.recorder, nil
}

// ReportHandler returns the security report handler instance.
func (c *Container) ReportHandler() (*securityHTTP.ReportHandler, error) {
	var err error
	c.security.reportInit.Do(func() {
		c.security.reportHandler, err = c.initReportHandler()
		if err != nil {
			c.initErrors["reportHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["reportHandler"]; exists {
		return nil, storedErr
	}
	return c.security.reportHandler, nil
}

// initSecurityEventRepository creates the security event repository instance.
func (c *Container) initSecurityEventRepository() (securityUseCase.SecurityEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for security event repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return securityRepository.NewMySQLSecurityEventRepository(db), nil
	case "postgres":
		return securityRepository.NewPostgreSQLSecurityEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecurityEventUseCase creates the security event use case with all its dependencies.
func (c *Container) initSecurityEventUseCase() (securityUseCase.SecurityEventUseCase, error) {
	eventRepo, err := c.SecurityEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get security event repository for use case: %w", err)
	}

	useCase := securityUseCase.NewSecurityEventUseCase(eventRepo)

	gateMetrics := metrics.NoopGateMetrics()
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for security event use case: %w", err)
	}
	if metricsProvider != nil {
		gateMetrics, err = metrics.NewGateMetrics(
			metricsProvider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gate metrics: %w", err)
		}
	}

	return securityUseCase.NewSecurityEventUseCaseWithMetrics(useCase, gateMetrics), nil
}

// initSecurityRecorder creates the security recorder with all its dependencies.
func (c *Container) initSecurityRecorder() (*securityHTTP.Recorder, error) {
	eventUseCase, err := c.SecurityEventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get security event use case for recorder: %w", err)
	}

	return securityHTTP.NewRecorder(eventUseCase, c.RoleResolver(), c.Logger()), nil
}

// initReportHandler creates the security report handler with all its dependencies.
func (c *Container) initReportHandler() (*securityHTTP.ReportHandler, error) {
	eventUseCase, err := c.SecurityEventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get security event use case for report handler: %w", err)
	}

	recorder, err := c.SecurityRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get security recorder for report handler: %w", err)
	}

	return securityHTTP.NewReportHandler(eventUseCase, recorder, c.Logger()), nil
}

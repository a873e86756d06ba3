package services

import (
	"fmt"

	"github.com/SscSPs/purchase_converter_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/purchase_converter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_converter_app/internal/platform/config"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateSource gateways.RateSource, keyProvider *keys.Provider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.Purchase = NewPurchaseService(repos.PurchaseRepo, rateSource)

	tokenService, err := NewTokenService(cfg, keyProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	container.Token = tokenService

	return container, nil
}

// Compile-time interface implementation checks
var (
	_ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)
	_ portssvc.TokenSvcFacade    = (*tokenService)(nil)
)

// Package account wraps the remote service's identity surface: caller role,
// saved profile, and the admin bootstrap flows. Claim and transfer outcomes
// are closed result enums, not errors; handlers branch on every case.
package account

import (
	"context"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/models"
)

// Service exposes identity operations for one session.
type Service struct {
	client backend.Client
}

// NewService creates an account service for one session.
func NewService(client backend.Client) *Service {
	return &Service{client: client}
}

// Role returns the caller's role. Failures degrade to guest so an
// unreachable identity surface never locks the storefront.
func (s *Service) Role(ctx context.Context) models.UserRole {
	role, err := s.client.GetCallerUserRole(ctx)
	if err != nil {
		return models.RoleGuest
	}
	return role
}

// Profile returns the caller's saved profile, nil when none exists.
func (s *Service) Profile(ctx context.Context) (*models.UserProfile, error) {
	return s.client.GetCallerUserProfile(ctx)
}

// SaveProfile stores the caller's contact profile.
func (s *Service) SaveProfile(ctx context.Context, p models.UserProfile) error {
	return s.client.SaveCallerUserProfile(ctx, p)
}

// IsAdmin reports whether the caller currently holds the admin role.
func (s *Service) IsAdmin(ctx context.Context) (bool, error) {
	return s.client.IsCallerAdmin(ctx)
}

// ClaimAdmin attempts to claim the (unclaimed) admin role.
func (s *Service) ClaimAdmin(ctx context.Context) (models.ClaimAdminResult, error) {
	return s.client.ClaimAdminRole(ctx)
}

// TransferAdmin attempts to transfer the admin role to the caller.
func (s *Service) TransferAdmin(ctx context.Context) (models.TransferAdminResult, error) {
	return s.client.TransferAdminRole(ctx)
}

package service

import (
	"context"
	"errors"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"

	"go.uber.org/zap"
)

// Operation names a gated action.
type Operation string

const (
	OpHospitalCreate      Operation = "hospital.create"
	OpHospitalUpdate      Operation = "hospital.update"
	OpHospitalDelete      Operation = "hospital.delete"
	OpCampaignCreate      Operation = "campaign.create"
	OpCampaignUpdate      Operation = "campaign.update"
	OpCampaignDelete      Operation = "campaign.delete"
	OpCampaignImageAdd    Operation = "campaign.image.add"
	OpCampaignDocumentAdd Operation = "campaign.document.add"
	OpCampaignFollow      Operation = "campaign.follow"
	OpCampaignUnfollow    Operation = "campaign.unfollow"
)

type roleSet struct {
	anyAuthenticated bool
	names            map[string]struct{}
}

func roles(names ...string) roleSet {
	set := roleSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		set.names[n] = struct{}{}
	}
	return set
}

var (
	staffRoles   = roles(models.RoleAdmin, models.RoleSuperadmin)
	authorRoles  = roles(models.RoleAdmin, models.RoleSuperadmin, models.RoleHospitalContact)
	memberRoles  = roles(models.RoleAdmin, models.RoleSuperadmin, models.RoleHospitalContact, models.RoleDonor)
	anyoneSigned = roleSet{anyAuthenticated: true}
)

// capabilities maps every gated operation to the roles allowed to run it.
var capabilities = map[Operation]roleSet{
	OpHospitalCreate:      authorRoles,
	OpHospitalUpdate:      authorRoles,
	OpHospitalDelete:      staffRoles,
	OpCampaignCreate:      authorRoles,
	OpCampaignUpdate:      authorRoles,
	OpCampaignDelete:      staffRoles,
	OpCampaignImageAdd:    authorRoles,
	OpCampaignDocumentAdd: authorRoles,
	OpCampaignFollow:      anyoneSigned,
	OpCampaignUnfollow:    memberRoles,
}

// AuthorizationPolicy decides whether a user may run an operation.
type AuthorizationPolicy struct {
	roles  repository.RoleStore
	logger *zap.Logger
}

func NewAuthorizationPolicy(roles repository.RoleStore, logger *zap.Logger) *AuthorizationPolicy {
	return &AuthorizationPolicy{roles: roles, logger: logger}
}

// Authorize returns nil when user may run op, ErrUnauthenticated when there
// is no user, and ErrForbidden otherwise. Unknown operations and users whose
// role cannot be loaded are denied.
func (p *AuthorizationPolicy) Authorize(ctx context.Context, user *models.User, op Operation) error {
	if user == nil {
		return ErrUnauthenticated
	}

	set, ok := capabilities[op]
	if !ok {
		return ErrForbidden
	}
	if set.anyAuthenticated {
		return nil
	}

	role, err := p.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			p.logger.Error("role lookup failed", zap.Uint("role_id", user.RoleID), zap.Error(err))
		}
		return ErrForbidden
	}
	if _, ok := set.names[role.Name]; !ok {
		return ErrForbidden
	}
	return nil
}

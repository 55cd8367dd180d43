package memory

import (
	"context"
	"strings"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if live(u.DeletedAt) && strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	now := r.s.now()
	user.ID = r.s.nextID()
	user.CreatedAt, user.UpdatedAt = now, now
	row := *user
	row.Role = nil
	r.s.users = append(r.s.users, &row)
	return nil
}

func (r *UserRepository) Find(_ context.Context, ident repository.Identifier) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if live(u.DeletedAt) && ident.Matches(u.ID, u.UUID, "") {
			out := *u
			out.Role = r.s.role(u.RoleID)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if live(u.DeletedAt) && strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

type RoleRepository struct{ s *Store }

func (r *RoleRepository) FindByID(_ context.Context, id uint) (*models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if role := r.s.role(id); role != nil {
		return role, nil
	}
	return nil, repository.ErrNotFound
}

func (r *RoleRepository) List(_ context.Context) ([]models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Role(nil), r.s.roles...), nil
}

// role must be called with the lock held.
func (s *Store) role(id uint) *models.Role {
	for _, role := range s.roles {
		if role.ID == id {
			out := role
			return &out
		}
	}
	return nil
}

type AuditRepository struct{ s *Store }

func (r *AuditRepository) CreateAuditLog(_ context.Context, userID *uint, action string, details string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audit = append(r.s.audit, models.AuditLog{
		ID:        r.s.nextID(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: r.s.now(),
	})
	return nil
}

package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hope4ever-backend/internal/config"
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/internal/repository/memory"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"go.uber.org/zap"
)

const testSecret = "test-secret-key-for-unit-testing"

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.keys {
		if k == key {
			n++
		}
	}
	return n
}

type fixture struct {
	svc    *service.Service
	store  *memory.Store
	tokens *utils.TokenManager
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := utils.NewTokenManager(utils.TokenConfig{Secret: testSecret, Algorithm: "HS256", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{SelfRegisterRoles: []string{models.RoleDonor, models.RoleHospitalContact}},
	}
	store := memory.NewStore()
	events := &recordingPublisher{}
	svc := service.NewService(cfg, store.Repositories(), utils.NewPasswordHasherWithCost(4), tokens, events, zap.NewNop())

	return &fixture{svc: svc, store: store, tokens: tokens, events: events}
}

// user registers an account and returns the stored user with the given role.
func (f *fixture) user(t *testing.T, email string, roleID uint) *models.User {
	t.Helper()
	ctx := context.Background()

	profile, err := f.svc.Auth.Register(ctx, dto.RegisterRequest{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	if roleID != models.DefaultRoleID {
		f.store.SetRole(profile.ID, roleID)
	}
	u, err := f.store.Users().Find(ctx, repository.ByID(profile.ID))
	if err != nil {
		t.Fatalf("Find(%d): %v", profile.ID, err)
	}
	return u
}

func (f *fixture) hospital(t *testing.T, actor *models.User, name string) *dto.HospitalResponse {
	t.Helper()
	lat, lng := -6.2, 106.8
	h, err := f.svc.Hospital.Create(context.Background(), actor, dto.HospitalCreateRequest{
		Name:      name,
		City:      strPtr("Jakarta"),
		Latitude:  &lat,
		Longitude: &lng,
	})
	if err != nil {
		t.Fatalf("Create hospital %q: %v", name, err)
	}
	return h
}

func (f *fixture) campaign(t *testing.T, actor *models.User, title string) *dto.CampaignDetail {
	t.Helper()
	c, err := f.svc.Campaign.Create(context.Background(), actor, dto.CampaignCreateRequest{Title: title})
	if err != nil {
		t.Fatalf("Create campaign %q: %v", title, err)
	}
	return c
}

func strPtr(s string) *string { return &s }

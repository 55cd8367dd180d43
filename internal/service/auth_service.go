package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

type AuthService struct {
	users     repository.UserStore
	roles     repository.RoleStore
	audit     repository.AuditStore
	hasher    *utils.PasswordHasher
	tokens    *utils.TokenManager
	selfRoles map[string]struct{}
	dummyHash string
	logger    *zap.Logger
}

func NewAuthService(
	repos *repository.Repositories,
	hasher *utils.PasswordHasher,
	tokens *utils.TokenManager,
	selfRegisterRoles []string,
	logger *zap.Logger,
) *AuthService {
	selfRoles := make(map[string]struct{}, len(selfRegisterRoles))
	for _, r := range selfRegisterRoles {
		selfRoles[strings.TrimSpace(r)] = struct{}{}
	}

	// Unknown emails are checked against this digest so both failure paths
	// cost one bcrypt comparison.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", zap.Error(err))
	}

	return &AuthService{
		users:     repos.Users,
		roles:     repos.Roles,
		audit:     repos.Audit,
		hasher:    hasher,
		tokens:    tokens,
		selfRoles: selfRoles,
		dummyHash: dummyHash,
		logger:    logger,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfile, error) {
	email := normalizeEmail(req.Email)

	// 1. Resolve the requested role
	roleID := models.DefaultRoleID
	if req.RoleID != nil {
		roleID = *req.RoleID
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRole
		}
		return nil, fmt.Errorf("failed to load role: %w", err)
	}
	if _, ok := s.selfRoles[role.Name]; !ok {
		return nil, fmt.Errorf("%w: role %s cannot be chosen at registration", ErrForbidden, role.Name)
	}

	// 2. Hash the password; bcrypt reads at most MaxPasswordBytes bytes
	if len(req.Password) > utils.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, utils.MaxPasswordBytes)
	}
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. Create user; the store settles concurrent registrations of one email
	user := &models.User{
		UUID:         uuid.NewString(),
		RoleID:       role.ID,
		Name:         trimmed(req.Name),
		Email:        email,
		Phone:        trimmed(req.Phone),
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Role = role

	// Log registration action
	_ = s.audit.CreateAuditLog(ctx, &user.ID, "user_registration", fmt.Sprintf("User %s registered as %s", user.UUID, role.Name))

	return toUserProfile(user), nil
}

// Login authenticates a user and returns an access token. Unknown emails and
// wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. Find user by email
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		s.hasher.Verify(req.Password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}

	// 2. Compare password
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 3. Generate access token
	accessToken, err := s.tokens.Issue(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Log login action
	_ = s.audit.CreateAuditLog(ctx, &user.ID, "user_login", fmt.Sprintf("User %s logged in", user.UUID))

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to a live user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.Find(ctx, repository.Identifier{Kind: repository.KindExternalID, Value: subject})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// CurrentUser returns the profile of the token's subject
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*dto.UserProfile, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}

// Roles lists role reference data
func (s *AuthService) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out, nil
}

func toUserProfile(u *models.User) *dto.UserProfile {
	p := &dto.UserProfile{
		ID:              u.ID,
		UUID:            u.UUID,
		RoleID:          u.RoleID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		IsEmailVerified: u.IsEmailVerified,
		IsPhoneVerified: u.IsPhoneVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Role != nil {
		name := u.Role.Name
		p.RoleName = &name
	}
	return p
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimmed returns nil for absent or blank strings.
// rejectNulls fails when a PATCH body sets a NOT NULL column to null
func rejectNulls(null func(field string) bool, fields ...string) error {
	for _, field := range fields {
		if null(field) {
			return fmt.Errorf("%w: %s must not be null", ErrValidation, field)
		}
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

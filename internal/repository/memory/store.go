// Package memory keeps every repository contract in process memory. It backs
// STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"sync"
	"time"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"

	"gorm.io/gorm"
)

// Store holds all tables behind one mutex, so every repository method is
// atomic with respect to the others.
type Store struct {
	mu sync.Mutex

	roles     []models.Role
	users     []*models.User
	hospitals []*models.Hospital
	campaigns []*models.Campaign
	images    []*models.CampaignImage
	documents []*models.CampaignDocument
	followers []*models.CampaignFollower
	donations []*models.Donation
	audit     []models.AuditLog

	seq uint
	now func() time.Time
}

// NewStore returns an empty store seeded with the four platform roles.
func NewStore() *Store {
	desc := func(s string) *string { return &s }
	return &Store{
		roles: []models.Role{
			{ID: 1, Name: models.RoleSuperadmin, Description: desc("Full platform access")},
			{ID: 2, Name: models.RoleAdmin, Description: desc("Platform administration and moderation")},
			{ID: 3, Name: models.RoleHospitalContact, Description: desc("Hospital staff authoring hospitals and campaigns")},
			{ID: 4, Name: models.RoleDonor, Description: desc("Registered donor")},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the store clock; tests use it to order publications.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Roles() *RoleRepository { return &RoleRepository{s: s} }
func (s *Store) Hospitals() *HospitalRepository { return &HospitalRepository{s: s} }
func (s *Store) Campaigns() *CampaignRepository { return &CampaignRepository{s: s} }
func (s *Store) CampaignMedia() *CampaignMediaRepository { return &CampaignMediaRepository{s: s} }
func (s *Store) Donations() *DonationRepository { return &DonationRepository{s: s} }
func (s *Store) Scores() *ScoreRepository { return &ScoreRepository{s: s} }
func (s *Store) Audit() *AuditRepository { return &AuditRepository{s: s} }

// SeedDonation inserts a donation row as the payment flow would.
func (s *Store) SeedDonation(d models.Donation) models.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}
	d.UpdatedAt = d.CreatedAt
	if d.Status == "" {
		d.Status = models.DonationPending
	}
	if d.DonationType == "" {
		d.DonationType = models.DonationMonetary
	}
	s.donations = append(s.donations, &d)
	return d
}

// SetRole changes the role of a stored user.
func (s *Store) SetRole(userID, roleID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == userID {
			u.RoleID = roleID
		}
	}
}

// RemoveRole drops a role row, leaving users that reference it dangling.
func (s *Store) RemoveRole(roleID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.roles[:0]
	for _, r := range s.roles {
		if r.ID != roleID {
			kept = append(kept, r)
		}
	}
	s.roles = kept
}

// AuditLogs returns a copy of the audit trail.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.audit...)
}

// FollowerRows counts follower rows of a campaign, deleted parent or not.
func (s *Store) FollowerRows(campaignID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.followers {
		if f.CampaignID == campaignID {
			n++
		}
	}
	return n
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func live(d gorm.DeletedAt) bool {
	return !d.Valid
}

func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:         s.Users(),
		Roles:         s.Roles(),
		Audit:         s.Audit(),
		Hospitals:     s.Hospitals(),
		Campaigns:     s.Campaigns(),
		CampaignMedia: s.CampaignMedia(),
		Donations:     s.Donations(),
		Scores:        s.Scores(),
	}
}

var (
	_ repository.UserStore          = (*UserRepository)(nil)
	_ repository.RoleStore          = (*RoleRepository)(nil)
	_ repository.AuditStore         = (*AuditRepository)(nil)
	_ repository.HospitalStore      = (*HospitalRepository)(nil)
	_ repository.CampaignStore      = (*CampaignRepository)(nil)
	_ repository.CampaignMediaStore = (*CampaignMediaRepository)(nil)
	_ repository.DonationStore      = (*DonationRepository)(nil)
	_ repository.ScoreStore         = (*ScoreRepository)(nil)
)

package memory

import (
	"context"
	"sort"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
)

type CampaignMediaRepository struct{ s *Store }

func (r *CampaignMediaRepository) ListImages(_ context.Context, campaignID uint) ([]models.CampaignImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := []models.CampaignImage{}
	for _, img := range r.s.images {
		if img.CampaignID == campaignID {
			rows = append(rows, *img)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IsPrimary && !rows[j].IsPrimary
	})
	return rows, nil
}

func (r *CampaignMediaRepository) AddImage(_ context.Context, image *models.CampaignImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.campaign(repository.ByID(image.CampaignID)) == nil {
		return repository.ErrNotFound
	}
	image.ID = r.s.nextID()
	image.CreatedAt = r.s.now()
	row := *image
	r.s.images = append(r.s.images, &row)
	return nil
}

func (r *CampaignMediaRepository) ListDocuments(_ context.Context, campaignID uint) ([]models.CampaignDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := []models.CampaignDocument{}
	for _, doc := range r.s.documents {
		if doc.CampaignID == campaignID {
			rows = append(rows, *doc)
		}
	}
	return rows, nil
}

func (r *CampaignMediaRepository) AddDocument(_ context.Context, document *models.CampaignDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.campaign(repository.ByID(document.CampaignID)) == nil {
		return repository.ErrNotFound
	}
	document.ID = r.s.nextID()
	document.CreatedAt = r.s.now()
	row := *document
	r.s.documents = append(r.s.documents, &row)
	return nil
}

func (r *CampaignMediaRepository) ListFollowers(_ context.Context, campaignID uint) ([]models.CampaignFollower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := []models.CampaignFollower{}
	for _, f := range r.s.followers {
		if f.CampaignID == campaignID {
			rows = append(rows, *f)
		}
	}
	return rows, nil
}

func (r *CampaignMediaRepository) AddFollower(_ context.Context, follower *models.CampaignFollower) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.campaign(repository.ByID(follower.CampaignID)) == nil {
		return repository.ErrNotFound
	}
	for _, f := range r.s.followers {
		if f.CampaignID == follower.CampaignID && f.UserID == follower.UserID {
			return repository.ErrDuplicate
		}
	}
	follower.ID = r.s.nextID()
	follower.FollowedAt = r.s.now()
	row := *follower
	r.s.followers = append(r.s.followers, &row)
	return nil
}

func (r *CampaignMediaRepository) RemoveFollower(_ context.Context, campaignID, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, f := range r.s.followers {
		if f.CampaignID == campaignID && f.UserID == userID {
			r.s.followers = append(r.s.followers[:i], r.s.followers[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

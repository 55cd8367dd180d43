package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/service"
)

func TestCampaignImagesAndDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := f.user(t, "contact@example.com", 3)
	c := f.campaign(t, contact, "Chemo for Sari")

	img, err := f.svc.CampaignMedia.AddImage(ctx, contact, c.Slug, dto.CampaignImageCreateRequest{
		URL: "https://cdn.example.com/sari.jpg", IsPrimary: true,
	})
	if err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	if img.CampaignID != c.ID || !img.IsPrimary {
		t.Errorf("image = %+v", img)
	}

	if _, err := f.svc.CampaignMedia.AddDocument(ctx, contact, c.UUID, dto.CampaignDocumentCreateRequest{
		Title: "Diagnosis", URL: "https://cdn.example.com/diag.pdf",
	}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	images, _ := f.svc.CampaignMedia.ListImages(ctx, c.Slug)
	docs, _ := f.svc.CampaignMedia.ListDocuments(ctx, c.Slug)
	if len(images) != 1 || len(docs) != 1 || docs[0].Title != "Diagnosis" {
		t.Errorf("images = %+v, docs = %+v", images, docs)
	}

	if _, err := f.svc.CampaignMedia.AddImage(ctx, contact, "no-such-campaign", dto.CampaignImageCreateRequest{URL: "https://x.example"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing parent: expected ErrNotFound, got %v", err)
	}
}

func TestFollowUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := f.user(t, "contact@example.com", 3)
	donor := f.user(t, "donor@example.com", 4)
	c := f.campaign(t, contact, "Surgery for Joe")

	follow, err := f.svc.CampaignMedia.Follow(ctx, donor, c.Slug)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if follow.UserID != donor.ID || follow.CampaignID != c.ID {
		t.Errorf("follow = %+v", follow)
	}
	if _, err := f.svc.CampaignMedia.Follow(ctx, donor, c.UUID); !errors.Is(err, service.ErrAlreadyFollowing) {
		t.Errorf("second follow: expected ErrAlreadyFollowing, got %v", err)
	}

	followers, _ := f.svc.CampaignMedia.ListFollowers(ctx, c.Slug)
	if len(followers) != 1 {
		t.Errorf("followers = %+v", followers)
	}

	if err := f.svc.CampaignMedia.Unfollow(ctx, donor, c.Slug); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if err := f.svc.CampaignMedia.Unfollow(ctx, donor, c.Slug); !errors.Is(err, service.ErrNotFollowing) {
		t.Errorf("second unfollow: expected ErrNotFollowing, got %v", err)
	}
	if n := f.events.count(service.EventCampaignFollowed); n != 1 {
		t.Errorf("campaign.followed emitted %d times", n)
	}
}

func TestConcurrentFollowSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := f.user(t, "contact@example.com", 3)
	donor := f.user(t, "donor@example.com", 4)
	c := f.campaign(t, contact, "Race")

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		duplicate int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CampaignMedia.Follow(ctx, donor, c.Slug)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, service.ErrAlreadyFollowing):
				duplicate++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || duplicate != workers-1 || len(other) != 0 {
		t.Errorf("successes=%d duplicates=%d other=%v", successes, duplicate, other)
	}
	if rows := f.store.FollowerRows(c.ID); rows != 1 {
		t.Errorf("follower rows = %d, want 1", rows)
	}
}

func TestFollowersFromManyUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := f.user(t, "contact@example.com", 3)
	c := f.campaign(t, contact, "Popular")

	for i := 0; i < 3; i++ {
		u := f.user(t, fmt.Sprintf("donor%d@example.com", i), models.DefaultRoleID)
		if _, err := f.svc.CampaignMedia.Follow(ctx, u, c.Slug); err != nil {
			t.Fatalf("Follow: %v", err)
		}
	}
	followers, _ := f.svc.CampaignMedia.ListFollowers(ctx, c.Slug)
	if len(followers) != 3 {
		t.Errorf("followers = %d, want 3", len(followers))
	}
}

package service_test

import (
	"context"
	"testing"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
)

func TestScoresRankPublishedCampaigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := f.user(t, "contact@example.com", 3)
	h := f.hospital(t, contact, "RS Harapan")

	published := models.CampaignPublished
	for _, urgency := range []string{models.UrgencyLow, models.UrgencyCritical} {
		c, err := f.svc.Campaign.Create(ctx, contact, dto.CampaignCreateRequest{
			Title: "Case " + urgency, HospitalID: &h.ID, Urgency: strPtr(urgency),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := f.svc.Campaign.Update(ctx, contact, c.Slug, dto.CampaignUpdateRequest{Status: &published}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	f.campaign(t, contact, "Unpublished")

	scores, err := f.svc.Score.Campaigns(ctx)
	if err != nil {
		t.Fatalf("Campaigns: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("scored %d campaigns, want 2", len(scores))
	}
	if scores[0].Urgency != models.UrgencyCritical || scores[0].WeightedScore <= scores[1].WeightedScore {
		t.Errorf("scores = %+v", scores)
	}

	hospitals, err := f.svc.Score.Hospitals(ctx)
	if err != nil {
		t.Fatalf("Hospitals: %v", err)
	}
	if len(hospitals) != 1 || hospitals[0].ActiveCampaigns != 2 {
		t.Errorf("hospital scores = %+v", hospitals)
	}
}

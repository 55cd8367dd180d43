package memory

import (
	"context"
	"sort"

	"hope4ever-backend/internal/models"

	"github.com/shopspring/decimal"
)

type DonationRepository struct{ s *Store }

func (r *DonationRepository) ListByCampaign(_ context.Context, campaignID uint, offset, limit int) ([]models.Donation, error) {
	return r.list(func(d *models.Donation) bool { return d.CampaignID == campaignID }, offset, limit), nil
}

func (r *DonationRepository) ListByUser(_ context.Context, userID uint, offset, limit int) ([]models.Donation, error) {
	return r.list(func(d *models.Donation) bool { return d.UserID != nil && *d.UserID == userID }, offset, limit), nil
}

func (r *DonationRepository) list(keep func(*models.Donation) bool, offset, limit int) []models.Donation {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := []models.Donation{}
	for _, d := range r.s.donations {
		if keep(d) {
			rows = append(rows, *d)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return page(rows, offset, limit)
}

// ScoreRepository computes the same baseline ranking as the score views.
type ScoreRepository struct{ s *Store }

var urgencyWeight = map[string]float64{
	models.UrgencyCritical: 40,
	models.UrgencyHigh:     30,
	models.UrgencyMedium:   20,
	models.UrgencyLow:      10,
}

func (r *ScoreRepository) CampaignScores(_ context.Context, limit int) ([]models.CampaignScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	scores := r.s.campaignScores()
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].WeightedScore != scores[j].WeightedScore {
			return scores[i].WeightedScore > scores[j].WeightedScore
		}
		return scores[i].CampaignID < scores[j].CampaignID
	})
	return page(scores, 0, limit), nil
}

func (r *ScoreRepository) HospitalScores(_ context.Context) ([]models.HospitalScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byHospital := map[uint][]models.CampaignScore{}
	for _, cs := range r.s.campaignScores() {
		if cs.HospitalID != nil {
			byHospital[*cs.HospitalID] = append(byHospital[*cs.HospitalID], cs)
		}
	}

	scores := []models.HospitalScore{}
	for _, h := range r.s.hospitals {
		if !live(h.DeletedAt) {
			continue
		}
		hs := models.HospitalScore{
			HospitalID:  h.ID,
			UUID:        h.UUID,
			Name:        h.Name,
			City:        h.City,
			District:    h.District,
			TotalRaised: decimal.Zero,
		}
		var priority float64
		for _, cs := range byHospital[h.ID] {
			hs.ActiveCampaigns++
			hs.TotalRaised = hs.TotalRaised.Add(cs.AmountRaised)
			priority += cs.WeightedScore
		}
		hs.PriorityScore = round4(priority)
		scores = append(scores, hs)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].PriorityScore != scores[j].PriorityScore {
			return scores[i].PriorityScore > scores[j].PriorityScore
		}
		return scores[i].HospitalID < scores[j].HospitalID
	})
	return scores, nil
}

func (s *Store) campaignScores() []models.CampaignScore {
	followers := map[uint]int64{}
	for _, f := range s.followers {
		followers[f.CampaignID]++
	}

	scores := []models.CampaignScore{}
	for _, c := range s.campaigns {
		if !live(c.DeletedAt) || c.Status != models.CampaignPublished {
			continue
		}
		score := urgencyWeight[c.Urgency]
		if score == 0 {
			score = urgencyWeight[models.UrgencyLow]
		}
		if c.TargetAmount.IsPositive() {
			gap := c.TargetAmount.Sub(c.AmountRaised)
			if gap.IsNegative() {
				gap = decimal.Zero
			}
			ratio, _ := gap.Div(c.TargetAmount).Float64()
			score += ratio * 50
		}
		score += float64(min(followers[c.ID], 100)) * 0.1
		if c.Verified {
			score += 5
		}
		scores = append(scores, models.CampaignScore{
			CampaignID:    c.ID,
			UUID:          c.UUID,
			Slug:          c.Slug,
			Title:         c.Title,
			HospitalID:    c.HospitalID,
			Urgency:       c.Urgency,
			TargetAmount:  c.TargetAmount,
			AmountRaised:  c.AmountRaised,
			FollowerCount: followers[c.ID],
			WeightedScore: round4(score),
		})
	}
	return scores
}

func round4(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(4).Float64()
	return v
}

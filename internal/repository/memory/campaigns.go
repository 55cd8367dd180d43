package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/slug"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignRepository struct{ s *Store }

func (r *CampaignRepository) Find(_ context.Context, ident repository.Identifier) (*models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c := r.s.campaign(ident); c != nil {
		out := *c
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *CampaignRepository) List(_ context.Context, status string, offset, limit int) ([]models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Campaign
	for _, c := range r.s.campaigns {
		if live(c.DeletedAt) && (status == "" || c.Status == status) {
			rows = append(rows, *c)
		}
	}
	sortByPublication(rows)
	return page(rows, offset, limit), nil
}

// Search approximates MySQL boolean mode: +term is required, -term is
// excluded, term* matches a prefix, and bare terms are optional.
func (r *CampaignRepository) Search(_ context.Context, query string, limit int) ([]models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q := parseBoolean(query)
	var rows []models.Campaign
	for _, c := range r.s.campaigns {
		if !live(c.DeletedAt) {
			continue
		}
		words := tokenize(c.Title, deref(c.ShortDescription), deref(c.FullDescription))
		if q.match(words) {
			rows = append(rows, *c)
		}
	}
	sortByPublication(rows)
	return page(rows, 0, limit), nil
}

func (r *CampaignRepository) Create(_ context.Context, campaign *models.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s, err := slug.Generate(campaign.Title, func(candidate string) (bool, error) {
		return r.s.campaign(repository.Identifier{Kind: repository.KindSlug, Value: candidate}) != nil, nil
	})
	if err != nil {
		return err
	}

	now := r.s.now()
	campaign.Slug = s
	campaign.ID = r.s.nextID()
	campaign.CreatedAt, campaign.UpdatedAt = now, now
	row := *campaign
	r.s.campaigns = append(r.s.campaigns, &row)
	return nil
}

func (r *CampaignRepository) Update(_ context.Context, campaign *models.Campaign, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := r.s.campaign(repository.ByID(campaign.ID))
	if row == nil {
		return repository.ErrNotFound
	}

	next := *row
	for _, col := range columns {
		switch col {
		case "title":
			next.Title = campaign.Title
		case "short_description":
			next.ShortDescription = campaign.ShortDescription
		case "full_description":
			next.FullDescription = campaign.FullDescription
		case "hospital_id":
			next.HospitalID = campaign.HospitalID
		case "city":
			next.City = campaign.City
		case "district":
			next.District = campaign.District
		case "category":
			next.Category = campaign.Category
		case "urgency":
			next.Urgency = campaign.Urgency
		case "cost_estimate":
			next.CostEstimate = campaign.CostEstimate
		case "target_amount":
			next.TargetAmount = campaign.TargetAmount
		case "status":
			next.Status = campaign.Status
		case "published_at":
			next.PublishedAt = campaign.PublishedAt
		default:
			return fmt.Errorf("unknown campaign column %q", col)
		}
	}
	next.UpdatedAt = r.s.now()
	*row = next
	*campaign = next
	return nil
}

func (r *CampaignRepository) SoftDelete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := r.s.campaign(repository.ByID(id))
	if row == nil {
		return repository.ErrNotFound
	}
	row.DeletedAt = gorm.DeletedAt{Time: r.s.now(), Valid: true}
	return nil
}

func (r *CampaignRepository) SyncFunding(_ context.Context) (repository.FundingResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	totals := map[uint]decimal.Decimal{}
	for _, d := range r.s.donations {
		if d.Status == models.DonationCompleted {
			totals[d.CampaignID] = totals[d.CampaignID].Add(d.Amount)
		}
	}

	var result repository.FundingResult
	now := r.s.now()
	for _, c := range r.s.campaigns {
		if !live(c.DeletedAt) {
			continue
		}
		if total := totals[c.ID]; !c.AmountRaised.Equal(total) {
			c.AmountRaised = total
			c.UpdatedAt = now
			result.Synced++
		}
	}
	for _, c := range r.s.campaigns {
		if live(c.DeletedAt) && c.Status == models.CampaignPublished &&
			c.TargetAmount.IsPositive() && c.AmountRaised.GreaterThanOrEqual(c.TargetAmount) {
			c.Status = models.CampaignFunded
			c.UpdatedAt = now
			result.FundedIDs = append(result.FundedIDs, c.ID)
		}
	}
	return result, nil
}

func (s *Store) campaign(ident repository.Identifier) *models.Campaign {
	for _, c := range s.campaigns {
		if live(c.DeletedAt) && ident.Matches(c.ID, c.UUID, c.Slug) {
			return c
		}
	}
	return nil
}

// sortByPublication orders by published_at DESC with NULLs last, then id DESC.
func sortByPublication(rows []models.Campaign) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].PublishedAt, rows[j].PublishedAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return rows[i].ID > rows[j].ID
	})
}

type booleanQuery struct {
	required, excluded, optional []string
}

func parseBoolean(query string) booleanQuery {
	var q booleanQuery
	for _, term := range strings.Fields(strings.ToLower(query)) {
		op := term[0]
		term = strings.Trim(term, `+-~<>()"`)
		if term == "" {
			continue
		}
		switch op {
		case '+':
			q.required = append(q.required, term)
		case '-':
			q.excluded = append(q.excluded, term)
		default:
			q.optional = append(q.optional, term)
		}
	}
	return q
}

func (q booleanQuery) match(words []string) bool {
	for _, t := range q.required {
		if !hasTerm(words, t) {
			return false
		}
	}
	for _, t := range q.excluded {
		if hasTerm(words, t) {
			return false
		}
	}
	if len(q.required) > 0 {
		return true
	}
	for _, t := range q.optional {
		if hasTerm(words, t) {
			return true
		}
	}
	return false
}

func hasTerm(words []string, term string) bool {
	prefix := strings.HasSuffix(term, "*")
	term = strings.TrimSuffix(term, "*")
	for _, w := range words {
		if w == term || (prefix && strings.HasPrefix(w, term)) {
			return true
		}
	}
	return false
}

func tokenize(texts ...string) []string {
	var words []string
	for _, t := range texts {
		words = append(words, strings.FieldsFunc(strings.ToLower(t), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})...)
	}
	return words
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

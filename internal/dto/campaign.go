package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CampaignCreateRequest is the payload of POST /campaigns
type CampaignCreateRequest struct {
	Title            string           `json:"title" binding:"required,max=255"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=280"`
	FullDescription  *string          `json:"full_description"`
	HospitalID       *uint            `json:"hospital_id"`
	City             *string          `json:"city" binding:"omitempty,max=120"`
	District         *string          `json:"district" binding:"omitempty,max=120"`
	Category         *string          `json:"category" binding:"omitempty,max=80"`
	Urgency          *string          `json:"urgency" binding:"omitempty,oneof=low medium high critical"`
	CostEstimate     *decimal.Decimal `json:"cost_estimate" binding:"omitempty,gte=0"`
	TargetAmount     *decimal.Decimal `json:"target_amount" binding:"omitempty,gte=0"`
}

// CampaignUpdateRequest is the payload of PATCH /campaigns/{id}.
// An absent key is left untouched; an explicit null clears the column.
type CampaignUpdateRequest struct {
	Title            *string          `json:"title" binding:"omitempty,min=1,max=255"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=280"`
	FullDescription  *string          `json:"full_description"`
	HospitalID       *uint            `json:"hospital_id"`
	City             *string          `json:"city" binding:"omitempty,max=120"`
	District         *string          `json:"district" binding:"omitempty,max=120"`
	Category         *string          `json:"category" binding:"omitempty,max=80"`
	Urgency          *string          `json:"urgency" binding:"omitempty,oneof=low medium high critical"`
	CostEstimate     *decimal.Decimal `json:"cost_estimate" binding:"omitempty,gte=0"`
	TargetAmount     *decimal.Decimal `json:"target_amount" binding:"omitempty,gte=0"`
	Status           *string          `json:"status" binding:"omitempty,oneof=draft pending_review published paused funded rejected"`

	nulls nullFields
}

// UnmarshalJSON decodes the fields and remembers which keys were null
func (r *CampaignUpdateRequest) UnmarshalJSON(data []byte) error {
	type fields CampaignUpdateRequest
	var decoded fields
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := decodeNullFields(data)
	if err != nil {
		return err
	}
	*r = CampaignUpdateRequest(decoded)
	r.nulls = nulls
	return nil
}

// Null reports whether the JSON key field was sent as null
func (r CampaignUpdateRequest) Null(field string) bool {
	return r.nulls.has(field)
}

// CampaignQuery is the parsed query string of GET /campaigns
type CampaignQuery struct {
	Q      string
	Status string
}

// CampaignSummary is the single list projection shared by filtered listing
// and full-text search.
type CampaignSummary struct {
	ID               uint       `json:"id"`
	UUID             string     `json:"uuid"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	ShortDescription *string    `json:"short_description"`
	HospitalID       *uint      `json:"hospital_id"`
	City             *string    `json:"city"`
	Category         *string    `json:"category"`
	Urgency          string     `json:"urgency"`
	TargetAmount     string     `json:"target_amount"`
	AmountRaised     string     `json:"amount_raised"`
	Verified         bool       `json:"verified"`
	Status           string     `json:"status"`
	PublishedAt      *time.Time `json:"published_at"`
}

// CampaignDetail is the full view returned by GET /campaigns/{id}
type CampaignDetail struct {
	ID               uint       `json:"id"`
	UUID             string     `json:"uuid"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	ShortDescription *string    `json:"short_description"`
	FullDescription  *string    `json:"full_description"`
	HospitalID       *uint      `json:"hospital_id"`
	City             *string    `json:"city"`
	District         *string    `json:"district"`
	Category         *string    `json:"category"`
	Urgency          string     `json:"urgency"`
	CostEstimate     string     `json:"cost_estimate"`
	TargetAmount     string     `json:"target_amount"`
	AmountRaised     string     `json:"amount_raised"`
	Verified         bool       `json:"verified"`
	Status           string     `json:"status"`
	PublishedAt      *time.Time `json:"published_at"`
	CreatedBy        *uint      `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CampaignImageCreateRequest is the payload of POST /campaigns/{id}/images
type CampaignImageCreateRequest struct {
	URL       string  `json:"url" binding:"required,url,max=500"`
	Caption   *string `json:"caption" binding:"omitempty,max=255"`
	IsPrimary bool    `json:"is_primary"`
}

// CampaignDocumentCreateRequest is the payload of POST /campaigns/{id}/documents
type CampaignDocumentCreateRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	URL          string  `json:"url" binding:"required,url,max=500"`
	DocumentType *string `json:"document_type" binding:"omitempty,max=100"`
}

// CampaignImageResponse is the public view of a campaign image
type CampaignImageResponse struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	URL        string    `json:"url"`
	Caption    *string   `json:"caption"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

// CampaignDocumentResponse is the public view of a campaign document
type CampaignDocumentResponse struct {
	ID           uint      `json:"id"`
	CampaignID   uint      `json:"campaign_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	DocumentType *string   `json:"document_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// CampaignFollowerResponse is the public view of a follow relation
type CampaignFollowerResponse struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	UserID     uint      `json:"user_id"`
	FollowedAt time.Time `json:"followed_at"`
}

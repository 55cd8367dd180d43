package dto

import "time"

// DonationSummary is an entry of the donation listings. The donor is
// omitted for anonymous donations.
type DonationSummary struct {
	ID           uint      `json:"id"`
	UUID         string    `json:"uuid"`
	CampaignID   uint      `json:"campaign_id"`
	UserID       *uint     `json:"user_id"`
	Amount       string    `json:"amount"`
	DonationType string    `json:"donation_type"`
	Message      *string   `json:"message"`
	IsAnonymous  bool      `json:"is_anonymous"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

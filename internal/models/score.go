package models

import "github.com/shopspring/decimal"

// CampaignScore is a row of the vw_campaign_priority_scores view
type CampaignScore struct {
	CampaignID    uint            `json:"campaign_id"`
	UUID          string          `gorm:"column:uuid" json:"uuid"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	HospitalID    *uint           `json:"hospital_id"`
	Urgency       string          `json:"urgency"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	AmountRaised  decimal.Decimal `json:"amount_raised"`
	FollowerCount int64           `json:"follower_count"`
	WeightedScore float64         `json:"weighted_score"`
}

// TableName specifies the view backing CampaignScore
func (CampaignScore) TableName() string {
	return "vw_campaign_priority_scores"
}

// HospitalScore is a row of the vw_hospital_priority_scores view
type HospitalScore struct {
	HospitalID      uint            `json:"hospital_id"`
	UUID            string          `gorm:"column:uuid" json:"uuid"`
	Name            string          `json:"name"`
	City            *string         `json:"city"`
	District        *string         `json:"district"`
	ActiveCampaigns int64           `json:"active_campaigns"`
	TotalRaised     decimal.Decimal `json:"total_raised"`
	PriorityScore   float64         `json:"priority_score"`
}

// TableName specifies the view backing HospitalScore
func (HospitalScore) TableName() string {
	return "vw_hospital_priority_scores"
}

package dto

import (
	"encoding/json"
	"time"
)

// HospitalCreateRequest is the payload of POST /hospitals
type HospitalCreateRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	City         *string  `json:"city" binding:"omitempty,max=120"`
	District     *string  `json:"district" binding:"omitempty,max=120"`
	Address      *string  `json:"address"`
	ContactName  *string  `json:"contact_name" binding:"omitempty,max=150"`
	ContactPhone *string  `json:"contact_phone" binding:"omitempty,max=30"`
	ContactEmail *string  `json:"contact_email" binding:"omitempty,email,max=255"`
	Latitude     *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// HospitalUpdateRequest is the payload of PATCH /hospitals/{id}.
// An absent key is left untouched; an explicit null clears the column.
type HospitalUpdateRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=255"`
	City         *string  `json:"city" binding:"omitempty,max=120"`
	District     *string  `json:"district" binding:"omitempty,max=120"`
	Address      *string  `json:"address"`
	ContactName  *string  `json:"contact_name" binding:"omitempty,max=150"`
	ContactPhone *string  `json:"contact_phone" binding:"omitempty,max=30"`
	ContactEmail *string  `json:"contact_email" binding:"omitempty,email,max=255"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`

	nulls nullFields
}

// UnmarshalJSON decodes the fields and remembers which keys were null
func (r *HospitalUpdateRequest) UnmarshalJSON(data []byte) error {
	type fields HospitalUpdateRequest
	var decoded fields
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := decodeNullFields(data)
	if err != nil {
		return err
	}
	*r = HospitalUpdateRequest(decoded)
	r.nulls = nulls
	return nil
}

// Null reports whether the JSON key field was sent as null
func (r HospitalUpdateRequest) Null(field string) bool {
	return r.nulls.has(field)
}

// HospitalFilter narrows GET /hospitals
type HospitalFilter struct {
	City     string
	District string
}

// HospitalResponse is the public view of a hospital
type HospitalResponse struct {
	ID                 uint      `json:"id"`
	UUID               string    `json:"uuid"`
	Name               string    `json:"name"`
	City               *string   `json:"city"`
	District           *string   `json:"district"`
	Address            *string   `json:"address"`
	ContactName        *string   `json:"contact_name"`
	ContactPhone       *string   `json:"contact_phone"`
	ContactEmail       *string   `json:"contact_email"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

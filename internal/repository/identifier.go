package repository

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentifierKind tells which column an Identifier addresses.
type IdentifierKind int

const (
	KindID IdentifierKind = iota
	KindExternalID
	KindSlug
)

// Identifier addresses a row by numeric id, external id or slug.
type Identifier struct {
	Kind  IdentifierKind
	ID    uint
	Value string
}

// ByID addresses a row by its numeric primary key.
func ByID(id uint) Identifier {
	return Identifier{Kind: KindID, ID: id}
}

// ParseIdentifier applies the path identifier grammar:
//
//	all digits          numeric id
//	canonical UUID      external id
//	anything else       slug
//
// Entities without slugs answer ErrNotFound for the slug form.
func ParseIdentifier(raw string) Identifier {
	if raw != "" && isDigits(raw) {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || uint64(uint(id)) != id {
			// out of range; id 0 never matches
			return Identifier{Kind: KindID}
		}
		return ByID(uint(id))
	}
	if len(raw) == 36 {
		if u, err := uuid.Parse(raw); err == nil {
			return Identifier{Kind: KindExternalID, Value: u.String()}
		}
	}
	return Identifier{Kind: KindSlug, Value: raw}
}

func (i Identifier) String() string {
	switch i.Kind {
	case KindID:
		return strconv.FormatUint(uint64(i.ID), 10)
	default:
		return i.Value
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// where scopes a query to the identified row. sluggable reports whether the
// table has a slug column; when it does not, slug identifiers match nothing.
func (i Identifier) where(db *gorm.DB, sluggable bool) (*gorm.DB, bool) {
	switch i.Kind {
	case KindID:
		if i.ID == 0 {
			return db, false
		}
		return db.Where("id = ?", i.ID), true
	case KindExternalID:
		return db.Where("uuid = ?", i.Value), true
	case KindSlug:
		if !sluggable || i.Value == "" {
			return db, false
		}
		return db.Where("slug = ?", i.Value), true
	}
	return db, false
}

// Matches reports whether a row with the given keys is the identified row.
// Pass an empty slug for tables without a slug column.
func (i Identifier) Matches(id uint, externalID, slug string) bool {
	switch i.Kind {
	case KindID:
		return i.ID != 0 && i.ID == id
	case KindExternalID:
		return i.Value == externalID
	case KindSlug:
		return i.Value != "" && i.Value == slug
	}
	return false
}

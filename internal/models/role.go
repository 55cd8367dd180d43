package models

// Role names as seeded by the identity migration.
const (
	RoleSuperadmin      = "superadmin"
	RoleAdmin           = "admin"
	RoleHospitalContact = "hospital_contact"
	RoleDonor           = "donor"
)

// DefaultRoleID is assigned at registration when the caller names no role.
const DefaultRoleID uint = 4

// Role represents the roles reference table
type Role struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"size:255" json:"description"`
}

// TableName specifies the table name for Role model
func (Role) TableName() string {
	return "roles"
}

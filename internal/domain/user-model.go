package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleRoot  = "root"
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserProfile is the caller identity this service trusts. Tokens are issued
// by an external identity provider; only root profiles may have no company.
type UserProfile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string    `json:"full_name"`
	Position  *string   `json:"position,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:user" json:"role"`
	CompanyID *string   `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayName picks the best label for list views.
func (u *UserProfile) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

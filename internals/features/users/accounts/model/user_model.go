// file: internals/features/users/accounts/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	helper "msns_backend/internals/helpers"
)

// UserModel mirrors a Clerk account locally so events can reference
// creators and attendees.
type UserModel struct {
	UserID      uuid.UUID             `gorm:"type:uuid;primaryKey;column:user_id" json:"id"`
	ClerkID     string                `gorm:"type:varchar(64);not null;uniqueIndex:uq_users_clerk_id;column:clerk_id" json:"clerkId"`
	Username    *string               `gorm:"type:varchar(100);column:username" json:"username"`
	Email       string                `gorm:"type:varchar(200);not null;default:'';column:email" json:"email"`
	AccountType constants.Designation `gorm:"type:varchar(12);not null;column:account_type" json:"accountType"`
	Role        constants.Role        `gorm:"type:varchar(12);not null;index;column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.UserID)
	return nil
}

// DisplayName prefers the username and falls back to the email.
func (m UserModel) DisplayName() string {
	if m.Username != nil && *m.Username != "" {
		return *m.Username
	}
	return m.Email
}

package dto

import (
	"strings"

	"github.com/bytedance/sonic"

	"msns_backend/internals/constants"
	accountdto "msns_backend/internals/features/users/accounts/dto"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

type ClerkEvent struct {
	Type string    `json:"type"`
	Data ClerkUser `json:"data"`
}

type ClerkUser struct {
	ID             string         `json:"id"`
	Username       *string        `json:"username"`
	EmailAddresses []ClerkEmail   `json:"email_addresses"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

type ClerkEmail struct {
	EmailAddress string `json:"email_address"`
}

func ParseEvent(body []byte) (ClerkEvent, error) {
	var ev ClerkEvent
	err := sonic.Unmarshal(body, &ev)
	return ev, err
}

func (u ClerkUser) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

func (u ClerkUser) MetadataRole() constants.Role {
	s, _ := u.PublicMetadata["role"].(string)
	return constants.ParseRole(s)
}

// Sync builds the local mirror. The username falls back to the first email.
func (u ClerkUser) Sync(role constants.Role) accountdto.SyncUser {
	name := u.Username
	if name == nil || strings.TrimSpace(*name) == "" {
		if email := u.PrimaryEmail(); email != "" {
			name = &email
		}
	}
	return accountdto.SyncUser{ClerkID: u.ID, Username: name, Email: u.PrimaryEmail(), Role: role}
}

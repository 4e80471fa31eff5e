package service

import (
	"context"
	"encoding/json"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"msns_backend/internals/constants"
)

// RoleAssigner writes publicMetadata.role on the identity provider.
type RoleAssigner interface {
	AssignRole(ctx context.Context, clerkUserID string, role constants.Role) error
}

type ClerkRoleAssigner struct {
	users *user.Client
}

func NewClerkRoleAssigner(secretKey string) *ClerkRoleAssigner {
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)
	return &ClerkRoleAssigner{users: user.NewClient(cfg)}
}

func (a *ClerkRoleAssigner) AssignRole(ctx context.Context, clerkUserID string, role constants.Role) error {
	raw, err := json.Marshal(map[string]string{"role": string(role)})
	if err != nil {
		return err
	}
	_, err = a.users.UpdateMetadata(ctx, clerkUserID, &user.UpdateMetadataParams{
		PublicMetadata: clerk.JSONRawMessage(raw),
	})
	return err
}

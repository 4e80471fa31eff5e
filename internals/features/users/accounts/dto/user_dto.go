package dto

import (
	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/accounts/model"
	helper "msns_backend/internals/helpers"
)

type ListUsersInput struct {
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin principal clerk teacher student"`
	Page     int     `json:"page"           validate:"min=1"`
	PageSize int     `json:"pageSize"       validate:"min=1,max=100"`
}

func (in *ListUsersInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 20
	}
}

type MeResponse struct {
	User model.UserModel `json:"user"`
	Role constants.Role  `json:"role"`
}

// SyncUser is what the Clerk webhook knows about an account.
type SyncUser struct {
	ClerkID  string
	Username *string
	Email    string
	Role     constants.Role
}

func (in *ListUsersInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, 20, 100)
}

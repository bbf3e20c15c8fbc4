package domain

import (
	"time"

	"github.com/samber/lo"
)

// Group owns its member list and admin pointer. Both are references to User
// by identifier. Invariant: the admin is always present in MemberIDs.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminID   string    `json:"adminId"`
	MemberIDs []string  `json:"memberIds"`
	Pic       string    `json:"pic,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g Group) IsAdmin(userID string) bool {
	return g.AdminID == userID
}

func (g Group) HasMember(userID string) bool {
	return lo.Contains(g.MemberIDs, userID)
}

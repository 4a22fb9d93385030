package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/khel-store/khel/internal/session"
)

// Profile is the current member's own record plus their wallet history.
type Profile struct {
	Member       session.Member `json:"member"`
	Transactions []Transaction  `json:"transactions"`
	Recharges    []Recharge     `json:"recharges"`
}

// GetProfile fetches the authenticated member's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/members/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMember fetches a member by id.
func (c *Client) GetMember(ctx context.Context, id int64) (*session.Member, error) {
	var member session.Member
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/members/%d", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers fetches every member. Admin only.
func (c *Client) ListMembers(ctx context.Context) ([]session.Member, error) {
	var members []session.Member
	if err := c.do(ctx, http.MethodGet, "/admin/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// DeleteMember removes a member. Admin only.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/members/%d", id), nil, nil)
}

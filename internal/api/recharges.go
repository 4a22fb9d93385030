package api

import (
	"context"
	"net/http"
)

// Recharge is a wallet credit record. The member-facing profile view carries
// only amount and date; admin listings add the member and status columns.
type Recharge struct {
	ID           int64   `json:"id"`
	MemberID     int64   `json:"memberId,omitempty"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status,omitempty"`
	Date         string  `json:"date,omitempty"`
	RechargeDate string  `json:"rechargeDate,omitempty"`
}

// When returns the best available timestamp for the recharge.
func (r Recharge) When() string {
	if r.RechargeDate != "" {
		return r.RechargeDate
	}
	return r.Date
}

type rechargeRequest struct {
	Amount float64 `json:"amount"`
}

// CreateRecharge credits the authenticated member's wallet and returns the
// server's message.
func (c *Client) CreateRecharge(ctx context.Context, amount float64) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/recharges", rechargeRequest{Amount: amount}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListRecharges fetches every recharge. Admin only.
func (c *Client) ListRecharges(ctx context.Context) ([]Recharge, error) {
	var recharges []Recharge
	if err := c.do(ctx, http.MethodGet, "/admin/recharges", nil, &recharges); err != nil {
		return nil, err
	}
	return recharges, nil
}

package api

import (
	"context"
	"net/http"
)

// DashboardStats are the aggregate counts and revenue shown on the admin
// dashboard.
type DashboardStats struct {
	TotalMembers        int64   `json:"totalMembers"`
	TotalGames          int64   `json:"totalGames"`
	TotalTransactions   int64   `json:"totalTransactions"`
	TotalRecharges      int64   `json:"totalRecharges"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalRechargeAmount float64 `json:"totalRechargeAmount"`
}

// Dashboard fetches the aggregate stats. Admin only. Callers render zero
// values when this fails; the dashboard degrades rather than blocking.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

package client

import "context"

// CategoryCount is one row of the matched-category tally.
type CategoryCount struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Count    int    `json:"count"`
}

// ExpiringSubsidy is a dashboard entry with a deadline inside the upcoming
// window.
type ExpiringSubsidy struct {
	Subsidy  Subsidy `json:"subsidy"`
	DaysLeft int     `json:"days_left"`
	Urgency  string  `json:"urgency"`
}

// DashboardSummary aggregates the dashboard panels.
type DashboardSummary struct {
	NewSubsidies  []Subsidy         `json:"new_subsidies"`
	Expiring      []ExpiringSubsidy `json:"expiring"`
	TopCategories []CategoryCount   `json:"top_categories"`
}

// DashboardClient accesses the dashboard endpoints.
type DashboardClient struct {
	client *Client
}

// Summary returns the aggregated dashboard payload.
func (d *DashboardClient) Summary(ctx context.Context) (DashboardSummary, error) {
	var s DashboardSummary
	err := d.client.get(ctx, "/api/v1/dashboard/summary", &s)
	return s, err
}

// Categories returns the full matched-category tally.
func (d *DashboardClient) Categories(ctx context.Context) ([]CategoryCount, error) {
	var tally []CategoryCount
	err := d.client.get(ctx, "/api/v1/dashboard/categories", &tally)
	return tally, err
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Subsidy is one subsidy programme record.
type Subsidy struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Agency     string   `json:"agency"`
	Prefecture string   `json:"prefecture"`
	Amount     string   `json:"amount"`
	Rate       string   `json:"rate"`
	Target     string   `json:"target"`
	Overview   string   `json:"overview"`
	StartDate  string   `json:"start_date"`
	Deadline   string   `json:"deadline"`
	URL        string   `json:"url"`
	Industries []string `json:"industries"`
	Purposes   []string `json:"purposes"`
	Conditions []string `json:"conditions"`
	Documents  []string `json:"documents"`
}

// Classification is the schedule state attached to a subsidy.
type Classification struct {
	Status        string `json:"status"`
	DaysRemaining int    `json:"days_remaining"`
	OpenEnded     bool   `json:"open_ended"`
	BudgetCapped  bool   `json:"budget_capped"`
}

// SubsidyItem is a subsidy with its classification.
type SubsidyItem struct {
	Subsidy
	Classification Classification `json:"classification"`
}

// Facets lists the filter vocabularies.
type Facets struct {
	Industries  []string `json:"industries"`
	Purposes    []string `json:"purposes"`
	Prefectures []string `json:"prefectures"`
}

// CustomerMatch is one customer matched to a subsidy.
type CustomerMatch struct {
	Customer    Customer `json:"customer"`
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	MatchRate   int      `json:"match_rate"`
}

// SearchFilter holds the list query parameters.  Industry and Purpose are
// mutually exclusive.
type SearchFilter struct {
	Term       string
	Prefecture string
	Industry   string
	Purpose    string
}

func (f SearchFilter) query() string {
	q := url.Values{}
	if f.Term != "" {
		q.Set("q", f.Term)
	}
	if f.Prefecture != "" {
		q.Set("prefecture", f.Prefecture)
	}
	if f.Industry != "" {
		q.Set("industry", f.Industry)
	}
	if f.Purpose != "" {
		q.Set("purpose", f.Purpose)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// SubsidiesClient accesses the subsidy endpoints.
type SubsidiesClient struct {
	client *Client
}

// List returns subsidies matching the filter, active programmes first.
func (s *SubsidiesClient) List(ctx context.Context, filter SearchFilter) ([]SubsidyItem, error) {
	var items []SubsidyItem
	err := s.client.get(ctx, "/api/v1/subsidies"+filter.query(), &items)
	return items, err
}

// Archive returns all subsidies newest deadline first, closed ones included.
func (s *SubsidiesClient) Archive(ctx context.Context, term string) ([]SubsidyItem, error) {
	path := "/api/v1/subsidies/archive"
	if term != "" {
		path += "?q=" + url.QueryEscape(term)
	}
	var items []SubsidyItem
	err := s.client.get(ctx, path, &items)
	return items, err
}

// Facets returns the filter vocabularies.
func (s *SubsidiesClient) Facets(ctx context.Context) (Facets, error) {
	var f Facets
	err := s.client.get(ctx, "/api/v1/subsidies/facets", &f)
	return f, err
}

// Get returns one subsidy by id.
func (s *SubsidiesClient) Get(ctx context.Context, id int) (SubsidyItem, error) {
	var item SubsidyItem
	err := s.client.get(ctx, fmt.Sprintf("/api/v1/subsidies/%d", id), &item)
	return item, err
}

// Replace overwrites a subsidy record.
func (s *SubsidiesClient) Replace(ctx context.Context, sub Subsidy) (Subsidy, error) {
	var out Subsidy
	err := s.client.put(ctx, fmt.Sprintf("/api/v1/subsidies/%d", sub.ID), sub, &out)
	return out, err
}

// Delete removes a subsidy and its relations.
func (s *SubsidiesClient) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/api/v1/subsidies/%d", id))
}

// Customers returns the customers matched to a subsidy.
func (s *SubsidiesClient) Customers(ctx context.Context, id int) ([]CustomerMatch, error) {
	var matches []CustomerMatch
	err := s.client.get(ctx, fmt.Sprintf("/api/v1/subsidies/%d/customers", id), &matches)
	return matches, err
}

// ExportCSV downloads the full subsidy table as CSV bytes.
func (s *SubsidiesClient) ExportCSV(ctx context.Context) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodGet, "/api/v1/subsidies/export.csv", nil)
}

// Proposal renders the proposal PDF for a customer and subsidy pair.
func (s *SubsidiesClient) Proposal(ctx context.Context, subsidyID, customerID int) ([]byte, error) {
	return s.client.doRaw(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/subsidies/%d/proposal", subsidyID),
		map[string]int{"customer_id": customerID})
}

package client

import (
	"context"
	"fmt"
)

// Customer is one customer record.
type Customer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Scale    string `json:"scale"`
	Location string `json:"location"`
	Issues   string `json:"issues"`
}

// SubsidyMatch is one subsidy matched to a customer.
type SubsidyMatch struct {
	Subsidy        Subsidy        `json:"subsidy"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	MatchRate      int            `json:"match_rate"`
	Classification Classification `json:"classification"`
}

// CustomersClient accesses the customer endpoints.
type CustomersClient struct {
	client *Client
}

// List returns every customer.
func (c *CustomersClient) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := c.client.get(ctx, "/api/v1/customers", &customers)
	return customers, err
}

// Get returns one customer by id.
func (c *CustomersClient) Get(ctx context.Context, id int) (Customer, error) {
	var customer Customer
	err := c.client.get(ctx, fmt.Sprintf("/api/v1/customers/%d", id), &customer)
	return customer, err
}

// Replace overwrites a customer record.
func (c *CustomersClient) Replace(ctx context.Context, rec Customer) (Customer, error) {
	var out Customer
	err := c.client.put(ctx, fmt.Sprintf("/api/v1/customers/%d", rec.ID), rec, &out)
	return out, err
}

// Delete removes a customer and its relations.
func (c *CustomersClient) Delete(ctx context.Context, id int) error {
	return c.client.delete(ctx, fmt.Sprintf("/api/v1/customers/%d", id))
}

// Subsidies returns the subsidies matched to a customer.
func (c *CustomersClient) Subsidies(ctx context.Context, id int) ([]SubsidyMatch, error) {
	var matches []SubsidyMatch
	err := c.client.get(ctx, fmt.Sprintf("/api/v1/customers/%d/subsidies", id), &matches)
	return matches, err
}

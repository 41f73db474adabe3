// Package customer implements the customer records of the subsidy-matching
// CRM: the companies a consultancy tracks, together with the management
// issues that drive subsidy recommendations.  Persistence lives behind the
// Repository contract in this package.
package customer

import (
	"strings"

	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Customer is a company record.  All fields are free text; the demo dataset
// carries Japanese values (e.g. Industry "製造業", Location "東京都").
type Customer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Scale    string `json:"scale"`
	Location string `json:"location"`

	// Issues describes the management problems the customer wants solved.
	// The proposal narrative interpolates this text verbatim.
	Issues string `json:"issues"`
}

// Validate checks the minimal structural invariants of a customer record.
// Field contents are deliberately unconstrained; a replacement with empty
// descriptive fields is accepted.
func (c Customer) Validate() error {
	if c.ID <= 0 {
		return errors.InvalidParam("customer id must be a positive integer")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.InvalidParam("customer name must not be empty")
	}
	return nil
}

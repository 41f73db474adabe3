// Package proposal builds the customer-facing proposal document for one
// customer-subsidy pairing and drives its rendering to a PDF artifact.
package proposal

import (
	"fmt"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
)

// TermRow is one label/value pair of the terms table.
type TermRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is the renderer-independent proposal model: a title block, a
// narrative, the programme terms, and the ordered application conditions.
type Document struct {
	Title     string `json:"title"`
	Addressee string `json:"addressee"`

	// Narrative ties the customer's stated issues to the programme
	// overview.
	NarrativeHeading string `json:"narrative_heading"`
	Narrative        string `json:"narrative"`

	TermsHeading string    `json:"terms_heading"`
	Terms        []TermRow `json:"terms"`

	ConditionsHeading string   `json:"conditions_heading"`
	Conditions        []string `json:"conditions"`
}

// BuildDocument assembles the proposal for a customer-subsidy pair.  Pure
// function of its inputs; rendering happens elsewhere.
func BuildDocument(c customer.Customer, s subsidy.Subsidy) Document {
	return Document{
		Title:            fmt.Sprintf("%sのご提案", s.Name),
		Addressee:        fmt.Sprintf("%s 様", c.Name),
		NarrativeHeading: "1. 提案概要",
		Narrative: fmt.Sprintf(
			"貴社の経営課題である「%s」に対し、本補助金の活用をご提案いたします。この補助金は「%s」であり、貴社の課題解決に大きく貢献する可能性がございます。",
			c.Issues, s.Overview),
		TermsHeading: "2. 補助金詳細",
		Terms: []TermRow{
			{Label: "補助金額", Value: s.Amount},
			{Label: "補助率", Value: s.Rate},
			{Label: "対象者", Value: s.Target},
			{Label: "公募締切", Value: s.Deadline},
		},
		ConditionsHeading: "3. 主な申請要件",
		Conditions:        append([]string(nil), s.Conditions...),
	}
}

// Package subsidy implements the subsidy programme records and the deadline
// classification rules that drive every list, dashboard, and tally in the
// service.
package subsidy

import (
	"strings"

	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Subsidy is a government support programme record.  Deadline is either an
// ISO date ("2006-01-02") or free text for open-ended programmes; the
// classifier in schedule.go interprets it.
type Subsidy struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Agency     string `json:"agency"`
	Prefecture string `json:"prefecture"`

	// Amount and Rate are display strings ("最大1,250万円", "1/2").  The
	// source registries publish them as prose, so no numeric parsing is
	// attempted.
	Amount string `json:"amount"`
	Rate   string `json:"rate"`

	Target    string `json:"target"`
	Overview  string `json:"overview"`
	StartDate string `json:"start_date"`
	Deadline  string `json:"deadline"`
	URL       string `json:"url"`

	Industries []string `json:"industries"`
	Purposes   []string `json:"purposes"`
	Conditions []string `json:"conditions"`
	Documents  []string `json:"documents"`
}

// Validate checks the minimal structural invariants of a subsidy record.
func (s Subsidy) Validate() error {
	if s.ID <= 0 {
		return errors.InvalidParam("subsidy id must be a positive integer")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.InvalidParam("subsidy name must not be empty")
	}
	return nil
}

// Clone returns a deep copy; the slices are copied so callers can mutate the
// result without affecting store state.
func (s Subsidy) Clone() Subsidy {
	out := s
	out.Industries = append([]string(nil), s.Industries...)
	out.Purposes = append([]string(nil), s.Purposes...)
	out.Conditions = append([]string(nil), s.Conditions...)
	out.Documents = append([]string(nil), s.Documents...)
	return out
}

// HasIndustry reports whether tag is one of the subsidy's industry tags.
func (s Subsidy) HasIndustry(tag string) bool {
	for _, v := range s.Industries {
		if v == tag {
			return true
		}
	}
	return false
}

// HasPurpose reports whether tag is one of the subsidy's purpose tags.
func (s Subsidy) HasPurpose(tag string) bool {
	for _, v := range s.Purposes {
		if v == tag {
			return true
		}
	}
	return false
}

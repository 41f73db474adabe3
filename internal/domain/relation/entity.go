// Package relation implements the customer-subsidy match records: which
// programme has been suggested to which company, how far the application has
// progressed, and the advisor's match score.
package relation

import (
	"fmt"

	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// ProposalStatus is the progress of one customer-subsidy pairing through the
// advisory workflow.
type ProposalStatus string

const (
	StatusNotProposed ProposalStatus = "not_proposed"
	StatusProposed    ProposalStatus = "proposed"
	StatusPreparing   ProposalStatus = "preparing"
	StatusApplied     ProposalStatus = "applied"
	StatusAccepted    ProposalStatus = "accepted"
	StatusRejected    ProposalStatus = "rejected"
)

// statusLabels maps each status to the Japanese display label the dashboard
// and CSV exports use.
var statusLabels = map[ProposalStatus]string{
	StatusNotProposed: "未提案",
	StatusProposed:    "提案済",
	StatusPreparing:   "申請準備中",
	StatusApplied:     "申請済",
	StatusAccepted:    "採択",
	StatusRejected:    "不採択",
}

// Label returns the Japanese display form of the status, or the raw value
// when the status is unknown.
func (s ProposalStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the defined statuses.
func (s ProposalStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts either the wire code ("proposed") or the Japanese
// display label ("提案済") and returns the canonical status.
func ParseStatus(v string) (ProposalStatus, error) {
	s := ProposalStatus(v)
	if s.Valid() {
		return s, nil
	}
	for code, label := range statusLabels {
		if v == label {
			return code, nil
		}
	}
	return "", errors.New(errors.CodeRelationStatusInvalid,
		fmt.Sprintf("unknown proposal status %q", v))
}

// Relation links one customer to one subsidy.  The pair (CustomerID,
// SubsidyID) identifies the record; the store keeps at most one relation per
// pair.
type Relation struct {
	CustomerID int            `json:"customer_id"`
	SubsidyID  int            `json:"subsidy_id"`
	Status     ProposalStatus `json:"status"`

	// MatchRate is the advisor's fit score in percent, 0 to 100.
	MatchRate int `json:"match_rate"`
}

// Validate checks referential fields, the status enum, and the score range.
func (r Relation) Validate() error {
	if r.CustomerID <= 0 {
		return errors.InvalidParam("relation customer_id must be a positive integer")
	}
	if r.SubsidyID <= 0 {
		return errors.InvalidParam("relation subsidy_id must be a positive integer")
	}
	if !r.Status.Valid() {
		return errors.New(errors.CodeRelationStatusInvalid,
			fmt.Sprintf("unknown proposal status %q", r.Status))
	}
	if r.MatchRate < 0 || r.MatchRate > 100 {
		return errors.InvalidParam("relation match_rate must be between 0 and 100")
	}
	return nil
}

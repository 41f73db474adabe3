package proposal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/proposal"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
)

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	c := customer.Customer{
		ID:     1,
		Name:   "株式会社A",
		Issues: "生産性向上と設備投資",
	}
	s := subsidy.Subsidy{
		ID:         2,
		Name:       "【東京都北区】IT・IoT導入支援事業補助金",
		Amount:     "最大100万円",
		Rate:       "1/2以内",
		Target:     "北区内に主たる事業所を有する中小企業者",
		Overview:   "IT・IoT等のツールを導入する経費の一部を補助します。",
		Deadline:   "2026-02-27",
		Conditions: []string{"事前相談が必須", "納税証明書の提出"},
	}

	doc := proposal.BuildDocument(c, s)

	assert.Equal(t, "【東京都北区】IT・IoT導入支援事業補助金のご提案", doc.Title)
	assert.Equal(t, "株式会社A 様", doc.Addressee)

	assert.Contains(t, doc.Narrative, "生産性向上と設備投資")
	assert.Contains(t, doc.Narrative, "IT・IoT等のツールを導入する経費の一部を補助します。")

	require.Len(t, doc.Terms, 4)
	assert.Equal(t, proposal.TermRow{Label: "補助金額", Value: "最大100万円"}, doc.Terms[0])
	assert.Equal(t, proposal.TermRow{Label: "補助率", Value: "1/2以内"}, doc.Terms[1])
	assert.Equal(t, proposal.TermRow{Label: "対象者", Value: "北区内に主たる事業所を有する中小企業者"}, doc.Terms[2])
	assert.Equal(t, proposal.TermRow{Label: "公募締切", Value: "2026-02-27"}, doc.Terms[3])

	assert.Equal(t, []string{"事前相談が必須", "納税証明書の提出"}, doc.Conditions)
}

func TestBuildDocumentCopiesConditions(t *testing.T) {
	t.Parallel()

	s := subsidy.Subsidy{Conditions: []string{"条件1"}}
	doc := proposal.BuildDocument(customer.Customer{}, s)
	doc.Conditions[0] = "改変"
	assert.Equal(t, "条件1", s.Conditions[0])
}

func TestBuildDocumentOpenEndedDeadline(t *testing.T) {
	t.Parallel()

	doc := proposal.BuildDocument(customer.Customer{}, subsidy.Subsidy{Deadline: subsidy.BudgetCapSentinel})
	assert.Equal(t, subsidy.BudgetCapSentinel, doc.Terms[3].Value)
}

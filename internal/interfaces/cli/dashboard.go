package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
)

// dashboardView flattens the summary into one table for terminal output.
type dashboardView matching.DashboardSummary

func (v dashboardView) TableHeaders() []string {
	return []string{"PANEL", "ENTRY", "DETAIL"}
}

func (v dashboardView) TableRows() [][]string {
	var rows [][]string
	for _, s := range v.NewSubsidies {
		rows = append(rows, []string{"new", s.Name, s.Deadline})
	}
	for _, e := range v.Expiring {
		rows = append(rows, []string{
			"expiring", e.Subsidy.Name,
			fmt.Sprintf("%d days (%s)", e.DaysLeft, e.Urgency),
		})
	}
	for _, c := range v.TopCategories {
		rows = append(rows, []string{"category", c.Category, strconv.Itoa(c.Count) + " matches"})
	}
	return rows
}

// NewDashboardCmd prints the advisor dashboard summary.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the newest, expiring, and most-matched subsidies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)

			summary, err := svc.Matching.DashboardSummary(cmd.Context())
			if err != nil {
				return err
			}
			return PrintResult(cmd, dashboardView(summary))
		},
	}
}

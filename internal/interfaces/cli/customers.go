package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/application/matching"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
)

type customerList []customer.Customer

func (l customerList) TableHeaders() []string {
	return []string{"ID", "NAME", "INDUSTRY", "SCALE", "LOCATION"}
}

func (l customerList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.Name, c.Industry, c.Scale, c.Location,
		})
	}
	return rows
}

type matchList []matching.SubsidyMatch

func (l matchList) TableHeaders() []string {
	return []string{"SUBSIDY", "NAME", "STATUS", "RATE", "DEADLINE"}
}

func (l matchList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, m := range l {
		rows = append(rows, []string{
			strconv.Itoa(m.Subsidy.ID),
			m.Subsidy.Name,
			m.StatusLabel,
			strconv.Itoa(m.MatchRate) + "%",
			m.Subsidy.Deadline,
		})
	}
	return rows
}

// NewCustomersCmd groups the customer listing commands.
func NewCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers and their matched subsidies",
	}
	cmd.AddCommand(newCustomersListCmd(), newCustomersMatchesCmd())
	return cmd
}

func newCustomersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)
			return PrintResult(cmd, customerList(svc.Store.Customers().List(cmd.Context())))
		},
	}
}

func newCustomersMatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches <customer-id>",
		Short: "Show the subsidies matched to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return cmd.Help()
			}

			svc := buildLocal(cliCtx)
			matches, err := svc.Matching.SubsidiesForCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return PrintResult(cmd, matchList(matches))
		},
	}
}

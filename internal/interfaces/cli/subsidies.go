package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	subsidyapp "github.com/hiroba-develop/GrantsDB-Demo/internal/application/subsidy"
)

// subsidyList adapts search results for table output.
type subsidyList []subsidyapp.Item

func (l subsidyList) TableHeaders() []string {
	return []string{"ID", "NAME", "PREFECTURE", "DEADLINE", "STATUS", "DAYS"}
}

func (l subsidyList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, it := range l {
		days := strconv.Itoa(it.Classification.DaysRemaining)
		if it.Classification.OpenEnded {
			days = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Name,
			it.Prefecture,
			it.Deadline,
			string(it.Classification.Status),
			days,
		})
	}
	return rows
}

// NewSubsidiesCmd groups the subsidy listing and export commands.
func NewSubsidiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subsidies",
		Short: "List, search, and export the subsidy database",
	}
	cmd.AddCommand(
		newSubsidiesListCmd(),
		newSubsidiesArchiveCmd(),
		newSubsidiesExportCmd(),
	)
	return cmd
}

func newSubsidiesListCmd() *cobra.Command {
	var (
		term       string
		prefecture string
		industry   string
		purpose    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subsidies, active programmes first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)

			items, err := svc.Search.Search(cmd.Context(), subsidyapp.Filter{
				Term:       term,
				Prefecture: prefecture,
				Industry:   industry,
				Purpose:    purpose,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, subsidyList(items))
		},
	}

	cmd.Flags().StringVarP(&term, "query", "q", "", "free-text search over name, agency, and overview")
	cmd.Flags().StringVar(&prefecture, "prefecture", "", "filter by prefecture")
	cmd.Flags().StringVar(&industry, "industry", "", "filter by industry tag")
	cmd.Flags().StringVar(&purpose, "purpose", "", "filter by purpose tag")
	return cmd
}

func newSubsidiesArchiveCmd() *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List all subsidies including closed ones, newest deadline first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)
			return PrintResult(cmd, subsidyList(svc.Search.SearchArchive(cmd.Context(), term)))
		},
	}

	cmd.Flags().StringVarP(&term, "query", "q", "", "free-text search including the target field")
	return cmd
}

func newSubsidiesExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full subsidy table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)

			data, err := svc.Export.SubsidiesCSV(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			PrintSuccess(cmd, fmt.Sprintf("wrote %d bytes to %s", len(data), out))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default: stdout)")
	return cmd
}

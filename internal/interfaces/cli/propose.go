package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewProposeCmd renders a proposal PDF for a customer and subsidy pair.
func NewProposeCmd() *cobra.Command {
	var (
		customerID int
		subsidyID  int
		out        string
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Render a proposal PDF for a customer and subsidy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLocal(cliCtx)

			pdfBytes, err := svc.Proposal.Generate(cmd.Context(), customerID, subsidyID)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("proposal_%d_%d.pdf", customerID, subsidyID)
			}
			if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			PrintSuccess(cmd, fmt.Sprintf("wrote %d bytes to %s", len(pdfBytes), out))
			return nil
		},
	}

	cmd.Flags().IntVar(&customerID, "customer", 0, "customer id")
	cmd.Flags().IntVar(&subsidyID, "subsidy", 0, "subsidy id")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: proposal_<customer>_<subsidy>.pdf)")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("subsidy")
	return cmd
}

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/domain/entities"

	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a part against the catalog",
		Long: `Compute a quote the same way POST /v1/quotes does.
The quote is not stored, so its id cannot be used to submit a job.`,
		Args: cobra.NoArgs,
		RunE: runQuote,
	}

	addPartFlags(cmd)

	return cmd
}

func addPartFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("template", "t", "", "Part template id")
	cmd.Flags().IntP("quantity", "q", 1, "Quantity")
	cmd.Flags().StringP("material", "m", "", "Material (template default when empty)")
	cmd.Flags().Float64P("score", "s", 100, "Manufacturability score, 0-100")
	_ = cmd.MarkFlagRequired("template")
}

func partFromFlags(cmd *cobra.Command) entities.PartRequest {
	template, _ := cmd.Flags().GetString("template")
	quantity, _ := cmd.Flags().GetInt("quantity")
	material, _ := cmd.Flags().GetString("material")
	score, _ := cmd.Flags().GetFloat64("score")
	return entities.PartRequest{
		TemplateID:             template,
		Quantity:               quantity,
		Material:               material,
		ManufacturabilityScore: score,
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}

	q, err := rt.quotes.CreateQuote(cmd.Context(), partFromFlags(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return writeJSON(out, response.FromQuote(q))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Template:\t%s (%s)\n", q.TemplateID, q.Process)
	fmt.Fprintf(tw, "Material:\t%s x%.2f\n", q.Material, q.MaterialMultiplier)
	fmt.Fprintf(tw, "Quantity:\t%d\n", q.Quantity)
	fmt.Fprintf(tw, "Volume discount:\t%.0f%%\n", q.VolumeDiscount*100)
	fmt.Fprintf(tw, "Unit price:\t%.2f\n", q.UnitPrice)
	fmt.Fprintf(tw, "Subtotal:\t%.2f\n", q.Subtotal)
	fmt.Fprintf(tw, "Platform fee:\t%.2f\n", q.PlatformFee)
	fmt.Fprintf(tw, "Total:\t%.2f %s\n", q.TotalPrice, q.Currency)
	fmt.Fprintf(tw, "Lead time:\t%d days\n", q.LeadTimeDays)
	fmt.Fprintf(tw, "Valid until:\t%s\n", q.ValidUntil.Format(time.RFC3339))
	for _, w := range q.Warnings {
		fmt.Fprintf(tw, "Warning:\t%s\n", w)
	}
	return tw.Flush()
}

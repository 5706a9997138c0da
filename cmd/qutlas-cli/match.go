package main

import (
	"fmt"
	"text/tabwriter"

	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/domain/entities"

	"github.com/spf13/cobra"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank catalog hubs for a part",
		Args:  cobra.NoArgs,
		RunE:  runMatch,
	}

	addPartFlags(cmd)
	cmd.Flags().Float64("lat", 0, "Delivery latitude")
	cmd.Flags().Float64("lng", 0, "Delivery longitude")
	cmd.Flags().IntP("limit", "n", 0, "Maximum results (0 for all)")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}

	req := partFromFlags(cmd)
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		req.DeliveryLocation = &entities.GeoPoint{Lat: lat, Lng: lng}
	}

	matches, err := rt.hubs.MatchHubs(cmd.Context(), req)
	if err != nil {
		return err
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return writeJSON(out, response.FromHubMatches(matches))
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "No certified hubs.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tHUB\tSCORE\tCOMPAT\tPRICE\tLEAD\tFEASIBLE")
	for i, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.1f\t%.2f\t%dd\t%t\n", i+1, m.HubID, m.Score, m.Compatibility, m.PriceEstimate, m.LeadTimeDays, m.Feasible)
	}
	return tw.Flush()
}

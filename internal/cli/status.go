package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show compliance dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				if err := apiClient.Health(ctx); err != nil {
					summary["server"] = "unreachable"
				} else {
					summary["server"] = "ok"
				}
				if counts, err := apiClient.Alerts().Summary(ctx); err == nil {
					summary["open_alerts"] = counts
				}
				if treatments, err := apiClient.Treatments().List(ctx, nil); err == nil {
					summary["treatments"] = treatments.TotalItems
				}
				return printOutput(summary)
			}

			fmt.Println("HerdSafe Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			if err := apiClient.Health(ctx); err != nil {
				fmt.Printf("  Server:        (error: %v)\n", err)
			} else {
				fmt.Println("  Server:        ok")
			}

			treatments, err := apiClient.Treatments().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Treatments:    (error: %v)\n", err)
			} else {
				fmt.Printf("  Treatments:    %d recorded\n", treatments.TotalItems)
			}

			counts, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				fmt.Printf("  Open alerts:   (error: %v)\n", err)
			} else {
				total := 0
				for _, n := range counts {
					total += n
				}
				fmt.Printf("  Open alerts:   %d total", total)
				if counts["high"] > 0 {
					fmt.Printf(" (%d high)", counts["high"])
				}
				fmt.Println()
			}

			return nil
		},
	}
}

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/service"
)

// exportCmd writes the CSV export to a file or stdout
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports ideas as CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		return withIdeaService(cmd, func(ctx context.Context, ideas *service.IdeaService) error {
			rows, err := ideas.Export(ctx, filter)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if err := csv.NewWriter(out).WriteAll(rows); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d ideas to %s\n", len(rows)-1, output)
			}
			return nil
		})
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/service"
	pkgutils "github.com/wso2/idea-management-api/pkg/utils"
)

// listCmd prints ideas matching the filter flags
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists ideas, newest submission first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		return withIdeaService(cmd, func(ctx context.Context, ideas *service.IdeaService) error {
			found, err := ideas.Search(ctx, filter)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ideas match.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tDEPARTMENT\tSUBMITTED\tTITLE")
			for i := range found {
				idea := &found[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					idea.IdeaID, idea.Status, idea.Department, pkgutils.FormatMillis(idea.SubmittedTime), idea.Title)
			}
			return w.Flush()
		})
	},
}

func init() {
	addFilterFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Only ideas in this status")
	cmd.Flags().String("department", "", "Only ideas from this department")
	cmd.Flags().StringP("query", "q", "", "Match title, submitter name or id")
	cmd.Flags().String("range", models.DateRangeAll, "Submission window: all, today, week, month")
}

func filterFromFlags(cmd *cobra.Command) (models.IdeaFilter, error) {
	status, _ := cmd.Flags().GetString("status")
	department, _ := cmd.Flags().GetString("department")
	query, _ := cmd.Flags().GetString("query")
	dateRange, _ := cmd.Flags().GetString("range")

	filter := models.IdeaFilter{Department: department, Query: query, DateRange: dateRange}
	if status != "" {
		parsed, ok := models.ParseIdeaStatus(status)
		if !ok {
			return filter, fmt.Errorf("unknown status: %s", status)
		}
		filter.Status = parsed
	}
	return filter, nil
}

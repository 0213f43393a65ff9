package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/service"
)

// statsCmd prints the dashboard aggregates
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints idea counts by status, department, classification and priority.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIdeaService(cmd, func(ctx context.Context, ideas *service.IdeaService) error {
			stats, err := ideas.GetStatistics(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "GROUP\tVALUE\tIDEAS\t")
			for _, s := range models.IdeaStatuses {
				fmt.Fprintf(w, "status\t%s\t%d\t\n", s, stats.ByStatus[s])
			}

			departments := make([]string, 0, len(stats.ByDepartment))
			for d := range stats.ByDepartment {
				departments = append(departments, d)
			}
			sort.Strings(departments)
			for _, d := range departments {
				fmt.Fprintf(w, "department\t%s\t%d\t\n", d, stats.ByDepartment[d])
			}

			for _, c := range models.Categories {
				fmt.Fprintf(w, "classification\t%s\t%d\t\n", c, stats.ClassificationStats[c])
			}
			for _, p := range models.PriorityLevels {
				fmt.Fprintf(w, "priority\t%s\t%d\t\n", p, stats.EvaluationStats[p])
			}

			fmt.Fprintln(w, " \t \t \t")
			fmt.Fprintf(w, "TOTAL\t\t%d\t\n", stats.Total)
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

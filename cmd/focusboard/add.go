package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusboard/internal/backend"
	"github.com/sandeepkv93/focusboard/internal/model"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		description string
		priority    string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an unscheduled todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePriority(priority)
			if err != nil {
				return err
			}
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			todo, err := a.client.CreateTodo(cmd.Context(), backend.NewTodo{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    p,
			}).Unwrap()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", todo.ID, todo.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "markdown description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "low|medium|high|critical")
	return cmd
}

func parsePriority(s string) (model.Priority, error) {
	for _, p := range []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityCritical} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

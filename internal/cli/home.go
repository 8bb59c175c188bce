package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the learn map, streak and points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.RefreshHome(cmd.Context()); err != nil {
				return err
			}
			ctrl.Flush()

			state := ctrl.Snapshot()
			out := cmd.OutOrStdout()
			if state.UserName != "" {
				fmt.Fprintf(out, "hola, %s (%s)\n", state.UserName, state.UserType)
			}
			fmt.Fprintf(out, "streak: %d days | points: %d | daily quiz done: %v\n",
				state.StreakDays, state.Points, state.DailyQuizDone)
			for i, cat := range state.Categories {
				progress := ""
				if entry, ok := state.Progress[cat.ID]; ok {
					progress = fmt.Sprintf(" %d/%d", entry.QuestionsCompleted, entry.TotalQuestions)
				}
				fmt.Fprintf(out, "%2d. %-20s [%s]%s\n", i+1, cat.Name, state.CategoryStates[i], progress)
			}
			if state.Latest != nil {
				fmt.Fprintf(out, "resume: %s level %d, question %d\n",
					state.Latest.CategoryName, state.Latest.Level, state.Latest.ResumeIndex())
			}
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	var category int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the sign dictionary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			signs, err := ctrl.SearchSigns(cmd.Context(), query, category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(signs) == 0 {
				fmt.Fprintln(out, "no signs found")
				return nil
			}
			for _, sign := range signs {
				fmt.Fprintf(out, "%4s  %-20s %s\n", strconv.Itoa(sign.ID), sign.Word, sign.CategoryName)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&category, "category", 0, "restrict to a category ID (0 = all)")
	return cmd
}

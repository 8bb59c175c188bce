package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration commands (requires an admin session)",
	}
	cmd.AddCommand(newAdminCategoryCmd())
	cmd.AddCommand(newAdminSignCmd())
	cmd.AddCommand(newAdminQuizCmd())
	cmd.AddCommand(newAdminStatsCmd())
	cmd.AddCommand(newAdminMetricsCmd())
	return cmd
}

func newAdminCategoryCmd() *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.CreateCategory(cmd.Context(), domain.CategoryInput{Name: args[0], IconURL: icon}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "category created")
			return nil
		},
	}
	add.Flags().StringVar(&icon, "icon", "", "icon URL or emoji")

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.UpdateCategory(cmd.Context(), id, domain.CategoryInput{Name: args[1], IconURL: icon}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "category updated")
			return nil
		},
	}
	update.Flags().StringVar(&icon, "icon", "", "icon URL or emoji")

	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "category deleted")
			return nil
		},
	}

	cmd.AddCommand(add, update, remove)
	return cmd
}

func newAdminSignCmd() *cobra.Command {
	var (
		description string
		videoURL    string
		imageURL    string
		categoryID  int
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Manage dictionary signs",
	}
	add := &cobra.Command{
		Use:   "add <word>",
		Short: "Create a sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			input := domain.SignInput{
				Word:        args[0],
				Description: description,
				VideoURL:    videoURL,
				ImageURL:    imageURL,
				CategoryID:  categoryID,
			}
			if err := ctrl.CreateSign(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sign created")
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "sign description")
	add.Flags().StringVar(&videoURL, "video", "", "video URL")
	add.Flags().StringVar(&imageURL, "image", "", "image URL")
	add.Flags().IntVar(&categoryID, "category", 0, "category ID")

	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid sign id %q", args[0])
			}
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.DeleteSign(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sign deleted")
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func newAdminQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Manage persisted quizzes",
	}
	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.DeleteQuiz(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "quiz deleted")
			return nil
		},
	}
	cmd.AddCommand(remove)
	return cmd
}

func newAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [user-id]",
		Short: "Show user statistics, or one user's progress detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid user id %q", args[0])
				}
				detail, err := ctrl.AdminUserProgress(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s <%s> (%s)\n", detail.User.Name, detail.User.Email, detail.User.UserType)
				for _, entry := range detail.Progress {
					fmt.Fprintf(out, "  category %d: level %d, %d/%d completed=%v\n",
						entry.CategoryID, entry.CurrentLevel, entry.QuestionsCompleted, entry.TotalQuestions, entry.Completed)
				}
				return nil
			}

			stats, err := ctrl.AdminUserStats(cmd.Context())
			if err != nil {
				return err
			}
			for _, row := range stats {
				fmt.Fprintf(out, "%4d  %-20s %-25s %-8s points=%d streak=%d\n",
					row.ID, row.Name, row.Email, row.UserType, row.Points, row.Streak)
			}
			return nil
		},
	}
}

func newAdminMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show global backend metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			metrics, err := ctrl.AdminMetrics(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users: %d\ncategories: %d\nsigns: %d\nquizzes today: %d\n",
				metrics.TotalUsers, metrics.TotalCategories, metrics.TotalSigns, metrics.QuizzesToday)
			return nil
		},
	}
}

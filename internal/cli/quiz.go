package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

func newQuizCmd() *cobra.Command {
	var (
		level  int
		resume bool
	)

	cmd := &cobra.Command{
		Use:   "quiz [category-id]",
		Short: "Play a quiz (omit the category for the quiz of the day)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryID := domain.DailyQuizCategory
			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid category id %q", args[0])
				}
				categoryID = id
			}

			ctrl, err := buildController(cmd.Context())
			if err != nil {
				return err
			}
			quiz, err := ctrl.StartQuiz(cmd.Context(), categoryID, level, resume)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d questions)\n\n", quiz.Title, len(quiz.Questions))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				question, ok := ctrl.CurrentQuestion()
				if !ok {
					break
				}
				fmt.Fprintf(out, "[%d/%d] %s\n", ctrl.QuizIndex()+1, len(quiz.Questions), question.Text)
				if question.VideoURL != "" {
					fmt.Fprintf(out, "       video: %s\n", question.VideoURL)
				}
				for i, option := range question.Options {
					fmt.Fprintf(out, "  %d) %s\n", i+1, option)
				}

				option, ok := readOption(out, scanner, question.Options)
				if !ok {
					return nil // input closed, abandon the quiz
				}
				if err := ctrl.SelectOption(option); err != nil {
					return err
				}
				correct, err := ctrl.CheckAnswer()
				if err != nil {
					return err
				}
				if correct {
					fmt.Fprintln(out, "  ✓ correcto")
				} else {
					fmt.Fprintf(out, "  ✗ incorrecto (respuesta: %s)\n", question.CorrectAnswer)
				}
				fmt.Fprintln(out)

				done, err := ctrl.Advance(cmd.Context())
				if err != nil {
					return err
				}
				if done {
					break
				}
			}

			outcome, err := ctrl.QuizOutcome()
			if err != nil {
				return err
			}
			if outcome.Passed {
				fmt.Fprintf(out, "¡Nivel completado! score: %d\n", outcome.Score)
			} else {
				fmt.Fprintf(out, "¡Sigue practicando! score: %d\n", outcome.Score)
			}
			ctrl.Flush()
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", 1, "quiz level")
	cmd.Flags().BoolVar(&resume, "resume", false, "resume from the saved question index")
	return cmd
}

func readOption(out io.Writer, scanner *bufio.Scanner, options []string) (string, bool) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return "", false
		}
		input := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		fmt.Fprintf(out, "enter a number between 1 and %d\n", len(options))
	}
}

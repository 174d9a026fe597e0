package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/rubric"
	"github.com/spf13/cobra"
)

func newRefineCmd() *cobra.Command {
	var (
		answers    []string
		styleName  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "refine [prompt|-]",
		Short: "Rewrite a prompt with the configured LLM",
		Long: `Rewrites a prompt so it covers the criteria it was missing. Answers to
clarifying questions are passed as criterion=text pairs.

Examples:
  sharpen refine "write a poem" --answer outcome="a haiku for my daughter"
  sharpen refine --answer outputFormat="three lines" - < draft.txt
  sharpen refine --style auto "fix the flaky login test"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseAnswers(answers)
			if err != nil {
				return err
			}

			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("style") {
				styleName = e.cfg.Style
			}

			r, err := e.newRefiner()
			if err != nil {
				return err
			}
			res, err := r.Refine(cmd.Context(), &refine.Request{
				Original: text,
				Answers:  parsed,
				Style:    styleName,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintln(out, res.Prompt)
			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(errOut, "\nScore %.0f%% -> %.0f%%\n", res.Before.Score()*100, res.After.Score()*100)
			if res.Style != "" {
				fmt.Fprintf(errOut, "Style: %s\n", res.Style)
			}
			for _, c := range res.Changes {
				fmt.Fprintf(errOut, "  - %s\n", c)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "Answer for a criterion, as criterion=text (repeatable)")
	cmd.Flags().StringVarP(&styleName, "style", "s", "", `Rewriting style name, or "auto" to pick one (default from config)`)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	return cmd
}

func parseAnswers(raw []string) ([]refine.Answer, error) {
	out := make([]refine.Answer, 0, len(raw))
	for _, s := range raw {
		key, text, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: want criterion=text", s)
		}
		c, err := rubric.Parse(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", s, err)
		}
		out = append(out, refine.Answer{Criterion: c, Text: strings.TrimSpace(text)})
	}
	return out, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sant0-9/sharpen/internal/clarify"
	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/server"
	"github.com/sant0-9/sharpen/internal/tokens"
	"github.com/spf13/cobra"
)

func newDiagnoseCmd() *cobra.Command {
	var (
		maxQuestions int
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "diagnose [prompt|-]",
		Short: "Check a prompt against the rubric and suggest clarifying questions",
		Long: `Scores a prompt against six criteria and prints the questions worth
answering first. Reads the prompt from stdin when no argument or "-" is given.

Examples:
  sharpen diagnose "write a poem"
  sharpen diagnose --max 6 < prompt.txt
  pbpaste | sharpen diagnose --json -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			req := server.DiagnoseRequest{Original: text}
			if cmd.Flags().Changed("max") {
				req.MaxQuestions = &maxQuestions
			}
			if err := req.Validate(); err != nil {
				return err
			}

			d := diagnose.Diagnose(req.Original)
			n := e.counter.Count(req.Original)
			resp := server.DiagnoseResponse{
				Diagnosis: d,
				Questions: clarify.Generate(d, req.Limit(e.cfg.MaxQuestions)),
				Tokens: server.TokenInfo{
					Count:   n,
					Display: tokens.Format(n),
					Tier:    tokens.Tier(n),
				},
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			printDiagnosis(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxQuestions, "max", "n", 0, "Maximum number of questions (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the diagnosis as JSON")

	return cmd
}

func printDiagnosis(w io.Writer, resp server.DiagnoseResponse) {
	d := resp.Diagnosis
	findings := d.Findings()

	fmt.Fprintf(w, "Score %.0f%% (%d/%d criteria)\n", d.Score()*100, len(d.Satisfied()), len(findings))
	for _, f := range findings {
		mark := "[ ]"
		if f.Satisfied {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %-22s %s\n", mark, f.Criterion.Label(), f.Note)
	}

	if len(resp.Questions) > 0 {
		fmt.Fprintln(w, "\nQuestions:")
		for i, q := range resp.Questions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, q.Text)
		}
	}

	fmt.Fprintf(w, "\n%s\n", resp.Tokens.Display)
}

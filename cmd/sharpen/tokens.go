package main

import (
	"encoding/json"
	"fmt"

	"github.com/sant0-9/sharpen/internal/server"
	"github.com/sant0-9/sharpen/internal/tokens"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var (
		model      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [text|-]",
		Short: "Count the tokens in a text",
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
			if model == "" {
				model = e.cfg.Model
			}

			n := e.counter.Count(text)
			resp := server.TokensResponse{
				TokenInfo: server.TokenInfo{
					Count:   n,
					Display: tokens.Format(n),
					Tier:    tokens.Tier(n),
				},
				ContextLimit: tokens.ContextLimit(model),
				ContextUsed:  tokens.ContextUsed(n, model),
			}

			if jsonOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.1f%% of %s's %d context)\n",
				resp.Display, resp.ContextUsed*100, model, resp.ContextLimit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model whose context window to compare against (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

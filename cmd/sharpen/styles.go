package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/spf13/cobra"
)

func newStylesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List rewriting styles",
		Long: `Lists the builtin rewriting styles and any found in ~/.config/sharpen/styles.

A style is a markdown file (name.md or name/STYLE.md) with optional YAML
frontmatter:

  ---
  name: release-notes
  description: Prompts that summarize changes for a changelog
  ---
  - Group changes by type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			all := e.styles.All()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, s := range all {
				name := s.Name
				if s.Name == e.cfg.Style {
					name += " *"
				}
				source := "builtin"
				if !s.Builtin {
					source = s.Path
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, s.Description, source)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a style's instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := e.styles.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Body)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new <description>",
		Short: "Draft a new style with the configured LLM",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.close()

			provider, err := llm.NewProvider(e.cfg)
			if err != nil {
				return err
			}
			s, err := style.NewGenerator(provider, e.cfg.Model, e.styles.Dir()).
				Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s at %s\n", s.Name, s.Path)
			return nil
		},
	})

	return cmd
}

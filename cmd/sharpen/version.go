package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/sant0-9/sharpen/internal/rubric"
	"github.com/spf13/cobra"
)

// Set with -ldflags at build time
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type versionInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"buildDate"`
	GoVersion   string `json:"goVersion"`
	QuestionSet string `json:"questionSet"`
}

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information for this binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:     version,
				Commit:      commit,
				BuildDate:   buildDate,
				GoVersion:   runtime.Version(),
				QuestionSet: rubric.QuestionSetVersion,
			}

			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sharpen %s (commit %s, built %s, %s, questions %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.QuestionSet)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}

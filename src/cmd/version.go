package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/paths"
)

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			commit := config.GitCommit
			if commit == "" {
				commit = "unknown"
			}
			built := config.BuildTime
			if built == "" {
				built = "unknown"
			}

			fmt.Fprintf(out, "%s %s (%s)\n", paths.ProjectName, config.Version, commit)
			fmt.Fprintf(out, "\nBuild Info:\n")
			fmt.Fprintf(out, "  Go: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "  Date: %s\n", built)
			return nil
		},
	}
}

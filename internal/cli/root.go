package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/voicetreelab/lazy-tutorial/internal/tutorial"
)

// BuildVersion can be overridden with -ldflags "-X github.com/voicetreelab/lazy-tutorial/internal/cli.BuildVersion=1.0.0"
var BuildVersion = "dev"

// NewRootCmd builds the command tree. The root command prints the children
// at the given path as one JSON line.
func NewRootCmd() *cobra.Command {
	var shallow bool

	rootCmd := &cobra.Command{
		Use:   "tutorial [path]",
		Short: "Print the tutorial entries at a path as JSON",
		Long: `Print the direct children of a tutorial section as a single-line JSON array.

Entries are strings; sections are objects mapping their label to their own
children. A path that does not exist prints []. Use -- before a path that
starts with a dash.

Examples:
  tutorial                     # top-level sections
  tutorial /Navigation/Modes   # entries of a nested section
  tutorial --shallow /Navigation
  tutorial -- -odd-path`,
		Args:          cobra.MaximumNArgs(1),
		Version:       BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tutorial.RootPath
			if len(args) == 1 {
				path = args[0]
			}
			provider := tutorial.NewProvider(tutorial.WithRenderMode(renderMode(shallow)))
			return provider.WriteJSON(cmd.OutOrStdout(), path)
		},
	}

	// "help" and "completion" are paths, not commands; --help still works
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "__help", Hidden: true})

	rootCmd.Flags().BoolVar(&shallow, "shallow", false, "render nested sections as empty arrays (legacy output)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBrowseCmd())
	return rootCmd
}

func renderMode(shallow bool) tutorial.RenderMode {
	if shallow {
		return tutorial.RenderShallow
	}
	return tutorial.RenderFull
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

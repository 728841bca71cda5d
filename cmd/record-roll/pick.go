package main

import (
	"fmt"
	"os"

	"github.com/frippertronics/record-roll/internal/roll"
	"github.com/spf13/cobra"
)

func newPickCmd(root *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Roll once without the viewer and print the result.",
		Long: `pick runs a single roll and prints the caption and cover URI to stdout.
Progress goes to stderr. With --save the cover is written to cover_dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, root, save)
		},
	}
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the cover image")
	return cmd
}

func runPick(cmd *cobra.Command, root *rootOptions, save bool) error {
	stderr := cmd.ErrOrStderr()

	a, err := newApp(cmd, root, os.Stderr, func(event roll.ProgressEvent) {
		if event.Level == roll.LevelVerbose && !root.verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case roll.LevelError:
			prefix = "✗ "
		case roll.LevelWarning:
			prefix = "! "
		case roll.LevelSuccess:
			prefix = "✓ "
		case roll.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Fprintln(stderr, prefix+event.Message)
	})
	if err != nil {
		return err
	}
	defer a.log.Sync()

	result, err := a.manager.Roll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Record.Caption())
	fmt.Fprintln(out, result.Artwork.URI)

	if save {
		path, err := a.saver.Save(result.Record, result.Artwork)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved %s\n", path)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/frippertronics/record-roll/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, root.configPath)
		},
	}
}

func runInit(cmd *cobra.Command, path string) error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("inspect stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("init requires a terminal; copy %s to %s instead", config.ExamplePath, path)
	}

	if _, err := os.Stat(path); err == nil {
		overwrite := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
			Value(&overwrite).
			Run()
		if err != nil {
			return fmt.Errorf("run init form: %w", err)
		}
		if !overwrite {
			return nil
		}
	}

	settings := config.DefaultSettings()
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Collection CSV").
				Description("Path to your Discogs collection export.").
				Value(&settings.CSVFile).
				Validate(validateCSVPath),
			huh.NewInput().
				Title("Discogs token").
				Description("Generate one under Settings > Developers on discogs.com.").
				EchoMode(huh.EchoModePassword).
				Value(&settings.Token).
				Validate(required("a token")),
			huh.NewConfirm().
				Title("Does the CSV start with a header row?").
				Value(&settings.HasHeader),
		),
	).RunWithContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("run init form: %w", err)
	}

	settings.CSVFile = strings.TrimSpace(settings.CSVFile)
	settings.Token = strings.TrimSpace(settings.Token)
	if err := settings.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("please enter %s", what)
		}
		return nil
	}
}

func validateCSVPath(s string) error {
	if err := required("a CSV path")(s); err != nil {
		return err
	}
	path := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no such file")
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

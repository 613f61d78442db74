package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/config"
)

var linesWrite bool

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Print the default companion lines",
		Args:  cobra.NoArgs,
		RunE:  runLinesCmd,
	}
	cmd.Flags().BoolVar(&linesWrite, "write", false, "write the defaults to the custom lines path if it does not exist")
	return cmd
}

func runLinesCmd(cmd *cobra.Command, _ []string) error {
	data := companion.DefaultYAML()
	if !linesWrite {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	path := config.DefaultLinesPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("lines file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat lines file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lines: %w", err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}

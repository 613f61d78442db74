package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pomopal/internal/stats"
)

//go:embed guide.md
var guideMarkdown string

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show how the timer works",
		Args:  cobra.NoArgs,
		RunE:  runGuideCmd,
	}
}

func runGuideCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	rendered, err := renderGuide(stats.TerminalWidth(), stats.ShouldUseColor(out) && os.Getenv("TERM") != "dumb")
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func renderGuide(width int, color bool) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(min(width, 100))}
	if color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStyles(styles.ASCIIStyleConfig))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(guideMarkdown)
	if err != nil {
		return "", fmt.Errorf("failed to render guide: %w", err)
	}
	return rendered, nil
}

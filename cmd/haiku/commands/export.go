// ABOUTME: CLI command to export the haiku journal
// ABOUTME: Writes YAML, Markdown or HTML to a file
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var exportOutput string

// exportFormats maps a format name to its default file extension
var exportFormats = map[string]string{
	"yaml":     "yaml",
	"markdown": "md",
	"html":     "html",
}

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <yaml|markdown|html>",
		Short: "Export the haiku journal",
		Long: `Export every saved haiku to a file.

yaml keeps every field and can be read back by other tools; markdown
and html are meant for reading.`,
		Example: `  haiku export yaml
  haiku export markdown --output journal.md
  haiku export html -o site/index.html`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"yaml", "markdown", "html"},
		RunE:      runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: haiku-journal.<ext>)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(args[0])
	if format == "md" {
		format = "markdown"
	}
	ext, ok := exportFormats[format]
	if !ok {
		return fmt.Errorf("unknown export format %q (want yaml, markdown or html)", args[0])
	}

	output := exportOutput
	if output == "" {
		output = "haiku-journal." + ext
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = journal.Close() }()

	switch format {
	case "yaml":
		err = journal.ExportToYAML(output)
	case "markdown":
		err = journal.ExportToMarkdown(output)
	case "html":
		err = journal.ExportToHTML(output)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported journal to %s\n", output)
	}
	return nil
}

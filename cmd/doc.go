package cmd

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/netdump/internal/message"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newDocCommand() *cobra.Command {
	var dir string
	docCmd := &cobra.Command{
		Use:    "gendoc",
		Short:  "Generate Markdown documentation",
		Long:   `Generate Markdown documentation for the CLI and its subcommands.`,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			if err := doc.GenMarkdownTree(root, dir); err != nil {
				return fmt.Errorf("failed to generate documentation: %w", err)
			}
			message.Success("Documentation generated in %s", dir)
			return nil
		},
	}
	docCmd.Flags().StringVar(&dir, "dir", "./docs", "directory the Markdown files are written to")
	return docCmd
}

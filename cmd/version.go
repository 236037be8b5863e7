package cmd

import (
	"github.com/praetorian-inc/netdump/internal/message"
	"github.com/praetorian-inc/netdump/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of netdump",
		Run: func(cmd *cobra.Command, args []string) {
			message.Info("%s", version.FullVersion())
		},
	}
}

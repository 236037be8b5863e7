package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGcpCommand(v *viper.Viper) *cobra.Command {
	gcpCmd := &cobra.Command{
		Use:   "gcp",
		Short: "Interact with Google Cloud Platform",
		Long:  `This command groups the Google Cloud Platform network topology commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	gcpCmd.AddCommand(newNetworkTopologyCommand(v))
	return gcpCmd
}

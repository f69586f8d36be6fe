package main

import (
	"github.com/spf13/cobra"

	"multistick/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newCreateCmd(),
		newMenuCmd(),
		newListDevicesCmd(),
		newDoctorCmd(),
	)
	return cmd
}

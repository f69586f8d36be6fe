package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"multistick/internal/blockdev"
	"multistick/internal/messages"
	"multistick/internal/runner"
)

func newListDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ListDevicesUse,
		Short: messages.ListDevicesShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			exec := runner.New(true, cmd.OutOrStdout())
			devices, err := blockdev.List(exec)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				return fmt.Errorf(messages.ListDevicesNone)
			}

			out := cmd.OutOrStdout()
			for _, d := range devices {
				tag := ""
				if d.Transport == "usb" {
					tag = " [USB]"
				}
				_, _ = fmt.Fprintf(out, "%-14s %8s  %s%s\n", d.Path, d.Size, d.Model, tag)
			}
			return nil
		},
	}
}

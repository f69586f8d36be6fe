package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"multistick/internal/config"
	"multistick/internal/doctor"
	"multistick/internal/messages"
	"multistick/internal/runner"
)

func newDoctorCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, messages.DoctorHead)

			path := configPath
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}

			exec := runner.New(true, out)
			results := doctor.CheckTools(exec)
			results = append(results, doctor.CheckPrivilege())
			results = append(results, doctor.CheckConfig(path))

			var ok, warn, fail int
			for _, res := range results {
				switch res.Status {
				case doctor.StatusOK:
					ok++
					_, _ = color.New(color.FgGreen).Fprint(out, "  ✓ ")
				case doctor.StatusWarn:
					warn++
					_, _ = color.New(color.FgYellow).Fprint(out, "  ! ")
				case doctor.StatusFail:
					fail++
					_, _ = color.New(color.FgRed).Fprint(out, "  ✗ ")
				}
				_, _ = fmt.Fprintf(out, "[%s] %s\n", res.CheckName, res.Message)
				if res.Recommendation != "" {
					_, _ = fmt.Fprintf(out, "      %s\n", res.Recommendation)
				}
			}

			_, _ = fmt.Fprintf(out, messages.DoctorSummaryFmt, ok, warn, fail)
			if fail > 0 {
				return fmt.Errorf(messages.DoctorFailSummaryExitFmt, fail)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", messages.CreateFlagConfig)
	return cmd
}

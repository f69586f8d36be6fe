package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"multistick/internal/assist"
	"multistick/internal/menu"
	"multistick/internal/messages"
	"multistick/internal/payload"
)

// newMenuCmd regenerates grub.cfg from an already-mounted drive without
// touching partitions or payloads.
func newMenuCmd() *cobra.Command {
	var bootMount, payloadMount string
	var allowFetch bool
	cmd := &cobra.Command{
		Use:   messages.MenuUse,
		Short: messages.MenuShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDir := filepath.Join(payloadMount, payload.StoreDirName)
			entries, err := payload.Sync(payload.RealSystem{}, storeDir, "", payload.Options{})
			if err != nil {
				return err
			}

			gen := menu.Generator{
				EnsureHelper: func() []string {
					return assist.Ensure(cmd.Context(), bootMount, assist.Options{
						AllowFetch: allowFetch,
						Out:        cmd.OutOrStdout(),
					})
				},
			}
			doc, warns := gen.Generate(entries)
			for _, w := range warns {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), w)
			}

			cfgPath := filepath.Join(bootMount, filepath.FromSlash(menu.ConfigRelPath))
			if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf(messages.MenuWriteFailedFmt, cfgPath, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.MenuWrittenFmt, cfgPath, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&bootMount, "boot-mount", "", messages.MenuFlagBootMount)
	cmd.Flags().StringVar(&payloadMount, "payload-mount", "", messages.MenuFlagPayloadMount)
	_ = cmd.MarkFlagRequired("boot-mount")
	_ = cmd.MarkFlagRequired("payload-mount")
	cmd.Flags().BoolVar(&allowFetch, "allow-fetch", false, messages.CreateFlagFetch)
	return cmd
}

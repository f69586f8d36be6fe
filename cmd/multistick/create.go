package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"multistick/internal/blockdev"
	"multistick/internal/config"
	"multistick/internal/messages"
	"multistick/internal/mode"
	"multistick/internal/payload"
	"multistick/internal/promptui"
	"multistick/internal/provision"
	"multistick/internal/runner"
	"multistick/internal/terminal"
)

// Built-in defaults; a defaults file and then flags override them.
const (
	defaultMountBase  = "/mnt/multistick"
	defaultBootSizeMB = 256
	defaultPayloadFS  = "ext4"
)

var (
	geteuidFunc       = os.Geteuid
	isInteractiveFunc = terminal.IsInteractive
)

type createFlags struct {
	device     string
	isoDir     string
	mountBase  string
	bootSizeMB int
	payloadFS  string
	modePref   string
	owner      string
	allowFetch bool
	// allowFetchSet records whether --allow-fetch was given explicitly,
	// so a literal --allow-fetch=false can override the defaults file.
	allowFetchSet bool
	dryRun        bool
	noDryRun      bool
	yes           bool
	configPath    string
}

func newCreateCmd() *cobra.Command {
	var flags createFlags
	cmd := &cobra.Command{
		Use:   messages.CreateUse,
		Short: messages.CreateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.allowFetchSet = cmd.Flags().Changed("allow-fetch")
			return runCreate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.device, "device", "d", "", messages.CreateFlagDevice)
	cmd.Flags().StringVarP(&flags.isoDir, "iso-dir", "i", "", messages.CreateFlagISODir)
	cmd.Flags().StringVarP(&flags.mountBase, "mount-base", "m", "", messages.CreateFlagMountBase)
	cmd.Flags().IntVar(&flags.bootSizeMB, "boot-size-mb", 0, messages.CreateFlagBootSize)
	cmd.Flags().StringVar(&flags.payloadFS, "payload-fs", "", messages.CreateFlagPayloadFS)
	cmd.Flags().StringVar(&flags.modePref, "mode", "auto", messages.CreateFlagMode)
	cmd.Flags().StringVar(&flags.owner, "owner", "", messages.CreateFlagOwner)
	cmd.Flags().BoolVar(&flags.allowFetch, "allow-fetch", false, messages.CreateFlagFetch)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", true, messages.CreateFlagDryRun)
	cmd.Flags().BoolVar(&flags.noDryRun, "no-dry-run", false, messages.CreateFlagNoDryRun)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, messages.CreateFlagYes)
	cmd.Flags().StringVar(&flags.configPath, "config", "", messages.CreateFlagConfig)
	return cmd
}

func runCreate(cmd *cobra.Command, flags createFlags) error {
	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	if !cfg.DryRun && geteuidFunc() != 0 {
		return fmt.Errorf(messages.CreateNoDryRunNeedsRoot)
	}

	exec := runner.New(cfg.DryRun, cmd.OutOrStdout())

	interactive := isInteractiveFunc() && !flags.yes
	if cfg.Device == "" {
		if !interactive {
			return fmt.Errorf(messages.CreateDeviceRequired)
		}
		devices, err := blockdev.List(exec)
		if err != nil {
			return err
		}
		chosen, err := promptui.UI{}.SelectDevice(devices)
		if err != nil {
			return err
		}
		cfg.Device = chosen
	}

	printSummary(cmd, cfg)

	deps := provision.Deps{
		Runner:  exec,
		Payload: payload.RealSystem{},
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	}
	if interactive {
		deps.Chooser = promptui.UI{}
		deps.Confirmer = promptui.UI{}
	}

	if err := provision.Run(cmd.Context(), cfg, deps); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.DryRun {
		_, _ = color.New(color.FgYellow).Fprintln(out, messages.RunDryRunDone)
	} else {
		_, _ = color.New(color.FgGreen).Fprintf(out, messages.RunSuccessFmt, cfg.Device)
	}
	return nil
}

// buildConfig merges built-ins, the defaults file, and flags into the
// immutable run configuration.
func buildConfig(flags createFlags) (provision.Config, error) {
	configPath := flags.configPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return provision.Config{}, err
		}
	}
	defaults, err := config.Load(configPath)
	if err != nil {
		return provision.Config{}, err
	}

	cfg := provision.Config{
		Device:     flags.device,
		MountBase:  pick(flags.mountBase, defaults.MountBase, defaultMountBase),
		BootSizeMB: pickInt(flags.bootSizeMB, defaults.BootSizeMB, defaultBootSizeMB),
		PayloadFS:  pick(flags.payloadFS, defaults.PayloadFS, defaultPayloadFS),
		WimbootURL: defaults.WimbootURL,
		AllowFetch: flags.allowFetch,
		DryRun:     flags.dryRun && !flags.noDryRun,
		AssumeYes:  flags.yes,
	}
	if !flags.allowFetchSet && defaults.AllowFetch != nil {
		cfg.AllowFetch = *defaults.AllowFetch
	}

	if cfg.PayloadFS != "ext4" && cfg.PayloadFS != "exfat" {
		return provision.Config{}, fmt.Errorf("--payload-fs must be ext4 or exfat, got %q", cfg.PayloadFS)
	}

	pref, err := mode.ParsePreference(flags.modePref)
	if err != nil {
		return provision.Config{}, err
	}
	cfg.ModePref = pref

	owner, err := payload.ParseOwnership(pick(flags.owner, defaults.Owner, string(payload.OwnInvoker)))
	if err != nil {
		return provision.Config{}, err
	}
	cfg.Owner = owner

	isoDir := pick(flags.isoDir, defaults.ISODir, "")
	if isoDir != "" {
		expanded, err := homedir.Expand(isoDir)
		if err != nil {
			return provision.Config{}, fmt.Errorf("expand %s: %w", isoDir, err)
		}
		cfg.ISODir = expanded
	}
	return cfg, nil
}

// printSummary echoes the effective configuration before the run starts.
func printSummary(cmd *cobra.Command, cfg provision.Config) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(out, messages.RunSummaryHead)
	_, _ = fmt.Fprintf(out, "  device:      %s\n", cfg.Device)
	if cfg.ISODir != "" {
		_, _ = fmt.Fprintf(out, "  iso dir:     %s\n", cfg.ISODir)
	}
	_, _ = fmt.Fprintf(out, "  mount base:  %s\n", cfg.MountBase)
	_, _ = fmt.Fprintf(out, "  boot size:   %d MiB\n", cfg.BootSizeMB)
	_, _ = fmt.Fprintf(out, "  payload fs:  %s\n", cfg.PayloadFS)
	_, _ = fmt.Fprintf(out, "  mode:        %s\n", cfg.ModePref)
	_, _ = fmt.Fprintf(out, "  owner:       %s\n", cfg.Owner)
	_, _ = fmt.Fprintf(out, "  dry-run:     %t\n", cfg.DryRun)
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pickInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

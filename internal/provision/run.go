// Package provision sequences a full run: probe, mode resolution,
// formatting, mounting, payload sync, menu generation, and cleanup.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"

	"multistick/internal/assist"
	"multistick/internal/blockdev"
	"multistick/internal/menu"
	"multistick/internal/messages"
	"multistick/internal/mode"
	"multistick/internal/payload"
	"multistick/internal/runner"
)

// Confirmer asks the human one yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// Deps are the external collaborators a run drives. Runner and Payload
// must be set; Chooser and Confirmer may be nil in non-interactive runs.
type Deps struct {
	Runner    runner.Runner
	Payload   payload.System
	Chooser   mode.Chooser
	Confirmer Confirmer
	// Out receives the run trace, Err the warnings.
	Out io.Writer
	Err io.Writer
}

var (
	sleepFunc     = time.Sleep
	readFileFunc  = os.ReadFile
	writeFileFunc = os.WriteFile
	mountedFunc   = blockdev.Mounted
)

// settleDelay gives the kernel time to re-read the partition table after
// destructive steps before anything touches the new partitions.
const settleDelay = 1 * time.Second

// Run executes one full provisioning run. Whatever was mounted is
// unmounted on every exit path; cleanup failures are reported but never
// displace the original error.
func Run(ctx context.Context, cfg Config, deps Deps) error {
	if err := checkTools(cfg, deps.Runner); err != nil {
		return err
	}
	if err := checkPreconditions(cfg, deps); err != nil {
		return err
	}

	dev := blockdev.New(cfg.Device, cfg.PayloadFS)
	state, probeWarns := blockdev.Probe(deps.Runner, dev)
	for _, w := range probeWarns {
		_, _ = fmt.Fprintf(deps.Err, messages.ProbeWarnFmt, w)
	}
	_, _ = fmt.Fprintln(deps.Out, probeMessage(state))

	opMode, err := mode.Resolve(cfg.Device, state, cfg.ModePref, cfg.AssumeYes, deps.Chooser)
	if err != nil {
		return err
	}

	if opMode == mode.Wipe && !cfg.AssumeYes {
		if err := confirmWipe(cfg, deps); err != nil {
			return err
		}
	}

	if opMode == mode.Wipe {
		if err := formatDevice(cfg, dev, deps.Runner, deps.Out); err != nil {
			return err
		}
	}

	// The defer is installed before mounting: if only the first mount
	// succeeds, it must still be undone. unmountAll skips anything that
	// never got mounted.
	bootMount, isoMount := cfg.MountPoints()
	defer unmountAll(deps, bootMount, isoMount)
	if err := mountPartitions(cfg, dev, bootMount, isoMount, deps); err != nil {
		return err
	}

	if opMode == mode.Wipe {
		_, _ = fmt.Fprintf(deps.Out, messages.FormatInstallGrubFmt, cfg.Device)
		args := []string{"grub-install", "--force", "--no-floppy", "--boot-directory=" + bootMount, cfg.Device}
		if err := deps.Runner.Run(args, true); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(deps.Out, messages.SyncHead)
	entries, err := payload.Sync(deps.Payload, filepath.Join(isoMount, payload.StoreDirName), cfg.ISODir, payload.Options{
		Owner:  cfg.Owner,
		DryRun: cfg.DryRun,
		Out:    deps.Out,
	})
	if err != nil {
		return err
	}

	doc := generateMenu(ctx, cfg, bootMount, entries, deps)
	return writeMenu(cfg, bootMount, doc, deps)
}

// checkTools fails fast when a tool the run may invoke is absent. Update
// runs skip the formatting tool set.
func checkTools(cfg Config, r runner.Runner) error {
	tools := []string{"lsblk", "blkid", "mount", "umount"}
	if cfg.ModePref != mode.PrefUpdate {
		tools = append(tools, "wipefs", "parted", "mkfs.ext4", "grub-install")
		if cfg.PayloadFS == "exfat" {
			tools = append(tools, "mkfs.exfat")
		}
	}
	for _, tool := range tools {
		if _, err := r.LookPath(tool); err != nil {
			return err
		}
	}
	return nil
}

// checkPreconditions validates the device and source directory before any
// mutating step.
func checkPreconditions(cfg Config, deps Deps) error {
	if cfg.Device == "" {
		return fmt.Errorf(messages.CreateDeviceRequired)
	}
	ok, err := blockdev.Exists(deps.Runner, cfg.Device)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(messages.CreateDeviceUnknownFmt, cfg.Device)
	}
	if cfg.ISODir != "" {
		info, err := deps.Payload.Stat(cfg.ISODir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf(messages.CreateISODirMissingFmt, cfg.ISODir)
		}
	}
	return nil
}

func probeMessage(state blockdev.LayoutState) string {
	if state == blockdev.Provisioned {
		return messages.ProbeLayoutProvisioned
	}
	return messages.ProbeLayoutFresh
}

// confirmWipe puts the destructive question to the human. Declining, or
// having no interactive confirmer available, aborts before anything is
// touched.
func confirmWipe(cfg Config, deps Deps) error {
	if deps.Confirmer == nil {
		return fmt.Errorf(messages.PromptNeedsTerminal)
	}
	size := deviceSize(deps.Runner, cfg.Device)
	ok, err := deps.Confirmer.Confirm(fmt.Sprintf(messages.ConfirmWipePromptFmt, cfg.Device, size))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(messages.ConfirmWipeDeclined)
	}
	return nil
}

func deviceSize(r runner.Runner, device string) string {
	devices, err := blockdev.List(r)
	if err != nil {
		return "unknown size"
	}
	for _, d := range devices {
		if d.Path == device {
			return d.Size
		}
	}
	return "unknown size"
}

// formatDevice wipes, partitions, and formats the drive. A settle pause
// follows each destructive step so the kernel sees the new table before
// the next command relies on it.
func formatDevice(cfg Config, dev blockdev.Device, r runner.Runner, out io.Writer) error {
	_, _ = fmt.Fprintf(out, messages.FormatWipingFmt, dev.Path)
	if err := r.Run([]string{"wipefs", "-a", dev.Path}, true); err != nil {
		return err
	}
	settle(cfg, r)

	_, _ = fmt.Fprintln(out, messages.FormatLayoutHead)
	_, _ = fmt.Fprintf(out, messages.FormatLayoutBootFmt, cfg.BootSizeMB, dev.Boot.Label)
	_, _ = fmt.Fprintf(out, messages.FormatLayoutISOFmt, cfg.PayloadFS, dev.ISO.Label)
	bootEnd := fmt.Sprintf("%dMiB", cfg.BootSizeMB+1)
	steps := [][]string{
		{"parted", "-s", dev.Path, "mklabel", "msdos"},
		{"parted", "-s", dev.Path, "mkpart", "primary", "ext4", "1MiB", bootEnd},
		{"parted", "-s", dev.Path, "set", "1", "boot", "on"},
		{"parted", "-s", dev.Path, "mkpart", "primary", cfg.PayloadFS, bootEnd, "100%"},
	}
	for _, step := range steps {
		if err := r.Run(step, true); err != nil {
			return err
		}
	}
	settle(cfg, r)

	if err := r.Run([]string{"mkfs.ext4", "-F", "-L", dev.Boot.Label, dev.Boot.Path}, true); err != nil {
		return err
	}
	var mkfsISO []string
	if cfg.PayloadFS == "exfat" {
		mkfsISO = []string{"mkfs.exfat", "-n", dev.ISO.Label, dev.ISO.Path}
	} else {
		mkfsISO = []string{"mkfs.ext4", "-F", "-L", dev.ISO.Label, dev.ISO.Path}
	}
	if err := r.Run(mkfsISO, true); err != nil {
		return err
	}
	settle(cfg, r)
	return nil
}

// settle waits for the kernel and udev to catch up with a partition-table
// change. Best effort: a missing udevadm only loses the event flush, the
// fixed delay still applies.
func settle(cfg Config, r runner.Runner) {
	_ = r.Run([]string{"udevadm", "settle"}, false)
	if !cfg.DryRun {
		sleepFunc(settleDelay)
	}
}

func mountPartitions(cfg Config, dev blockdev.Device, bootMount, isoMount string, deps Deps) error {
	_, _ = fmt.Fprintf(deps.Out, messages.MountHeadFmt, dev.Path, filepath.Dir(bootMount))
	if !cfg.DryRun {
		for _, dir := range []string{bootMount, isoMount} {
			if err := deps.Payload.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create mount point %s: %w", dir, err)
			}
		}
	}
	if err := deps.Runner.Run([]string{"mount", dev.Boot.Path, bootMount}, true); err != nil {
		return err
	}
	return deps.Runner.Run([]string{"mount", dev.ISO.Path, isoMount}, true)
}

// unmountAll is the unconditional cleanup: it unmounts whatever is still
// mounted and reports, but never escalates, its own failures.
func unmountAll(deps Deps, mounts ...string) {
	for _, m := range mounts {
		if !mountedFunc(m) {
			continue
		}
		_, _ = fmt.Fprintf(deps.Out, messages.UnmountHeadFmt, m)
		if err := deps.Runner.Run([]string{"umount", m}, true); err != nil {
			_, _ = fmt.Fprintf(deps.Err, messages.UnmountWarnFmt, m, err)
		}
	}
}

// generateMenu renders the boot menu and provisions the wimboot helper
// when a payload needs it. Helper problems surface as warnings only.
func generateMenu(ctx context.Context, cfg Config, bootMount string, entries []payload.Entry, deps Deps) string {
	_, _ = fmt.Fprintln(deps.Out, messages.MenuGenerateHead)
	for _, e := range entries {
		_, _ = fmt.Fprintf(deps.Out, messages.MenuEntryFmt, e.Name, menu.Classify(e.Name))
	}

	gen := menu.Generator{
		EnsureHelper: func() []string {
			return assist.Ensure(ctx, bootMount, assist.Options{
				AllowFetch: cfg.AllowFetch,
				FetchURL:   cfg.WimbootURL,
				DryRun:     cfg.DryRun,
				Out:        deps.Out,
			})
		},
	}
	doc, warns := gen.Generate(entries)
	for _, w := range warns {
		_, _ = fmt.Fprint(deps.Err, w)
	}
	return doc
}

// writeMenu persists grub.cfg, showing the delta against any existing
// menu first so update runs are auditable before they overwrite.
func writeMenu(cfg Config, bootMount, doc string, deps Deps) error {
	cfgPath := filepath.Join(bootMount, filepath.FromSlash(menu.ConfigRelPath))

	if current, err := readFileFunc(cfgPath); err == nil {
		diff := strings.TrimSpace(udiff.Unified(messages.MenuCurrentName, messages.MenuRegeneratedName, string(current), doc))
		if diff == "" {
			_, _ = fmt.Fprintln(deps.Out, messages.MenuNoChanges)
		} else {
			_, _ = fmt.Fprintf(deps.Out, messages.MenuDiffHeadFmt, cfgPath)
			_, _ = fmt.Fprintln(deps.Out, diff)
		}
	}

	_, _ = fmt.Fprintf(deps.Out, messages.MenuWriteFmt, cfgPath)
	if cfg.DryRun {
		return nil
	}
	if err := writeFileFunc(cfgPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf(messages.MenuWriteFailedFmt, cfgPath, err)
	}
	return nil
}

// perDeviceBase keys the mount point on the device basename so parallel
// runs against different devices cannot collide.
func perDeviceBase(base, device string) string {
	return filepath.Join(base, filepath.Base(device))
}

// Package payload reconciles a source directory of ISO images against the
// drive's payload store and reports the authoritative payload set.
package payload

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"multistick/internal/messages"
)

// StoreDirName is the fixed payload subdirectory under the payload
// partition. Only flat *.iso files directly inside it are recognized.
const StoreDirName = "isos"

// Entry is one bootable image in the payload store, keyed by file name.
type Entry struct {
	Name string
	Size int64
}

// GiB returns the entry size in GiB for display.
func (e Entry) GiB() float64 {
	return float64(e.Size) / (1 << 30)
}

// Options configure one synchronization pass.
type Options struct {
	// Owner is the ownership policy applied to the store after copying.
	Owner Ownership
	// DryRun reports planned copies without touching the destination.
	DryRun bool
	// Out receives the per-file copy/keep trace.
	Out io.Writer
}

// Sync reconciles srcDir into the payload store rooted at storeDir and
// returns the resulting entry set in name order.
//
// Change detection is by size only: a destination file with the source's
// size is treated as already synchronized even when its content differs.
// That blind spot is deliberate; the store holds multi-GiB images and the
// original contract never asked for content verification.
//
// srcDir may be empty, in which case the store is left untouched and the
// seeded set is returned (a valid update-without-new-payloads run). Any
// individual copy failure is fatal: a half-synced store must not be
// reported as authoritative.
func Sync(sys System, storeDir, srcDir string, opts Options) ([]Entry, error) {
	entries, err := seedFromStore(sys, storeDir)
	if err != nil {
		return nil, err
	}
	if srcDir == "" {
		return sorted(entries), nil
	}

	sources, err := listISOs(sys, srcDir)
	if err != nil {
		return nil, fmt.Errorf(messages.SyncReadSourceFmt, srcDir, err)
	}
	if len(sources) == 0 {
		if opts.Out != nil {
			_, _ = fmt.Fprintln(opts.Out, messages.SyncNoSourceISOs)
		}
		return sorted(entries), nil
	}

	plan, copyBytes, err := planCopies(sys, storeDir, srcDir, sources, entries)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun && copyBytes > 0 {
		if err := ensureSpace(sys, storeDir, copyBytes); err != nil {
			return nil, err
		}
	}

	for _, step := range plan {
		if opts.Out != nil {
			verb := messages.SyncKeepFmt
			if step.copy {
				verb = messages.SyncCopyFmt
			}
			_, _ = fmt.Fprintf(opts.Out, verb, step.entry.Name, step.entry.GiB())
		}
		if !step.copy || opts.DryRun {
			continue
		}
		if err := sys.MkdirAll(storeDir, 0o755); err != nil {
			return nil, fmt.Errorf(messages.SyncMkdirStoreFmt, storeDir, err)
		}
		src := filepath.Join(srcDir, step.entry.Name)
		dst := filepath.Join(storeDir, step.entry.Name)
		if err := sys.CopyFile(src, dst); err != nil {
			return nil, fmt.Errorf(messages.SyncCopyFailedFmt, step.entry.Name, err)
		}
	}

	if !opts.DryRun {
		if err := applyOwnership(sys, storeDir, opts.Owner, opts.Out); err != nil {
			return nil, err
		}
	}
	return sorted(entries), nil
}

type copyStep struct {
	entry Entry
	copy  bool
}

// planCopies decides, per source file in name order, whether a copy is
// needed, and folds the source sizes into the entry set. The source size
// wins over any stale destination size.
func planCopies(sys System, storeDir, srcDir string, sources []string, entries map[string]Entry) ([]copyStep, int64, error) {
	var plan []copyStep
	var copyBytes int64
	for _, name := range sources {
		info, err := sys.Stat(filepath.Join(srcDir, name))
		if err != nil {
			return nil, 0, fmt.Errorf(messages.SyncStatSourceFmt, name, err)
		}
		entry := Entry{Name: name, Size: info.Size()}

		needCopy := true
		if dst, err := sys.Stat(filepath.Join(storeDir, name)); err == nil && dst.Size() == info.Size() {
			needCopy = false
		}
		if needCopy {
			copyBytes += info.Size()
		}
		entries[name] = entry
		plan = append(plan, copyStep{entry: entry, copy: needCopy})
	}
	return plan, copyBytes, nil
}

// seedFromStore records the ISOs already on the drive. A missing store
// directory is an empty store, not an error: on a fresh drive (and in
// dry-run) it does not exist yet.
func seedFromStore(sys System, storeDir string) (map[string]Entry, error) {
	entries := map[string]Entry{}
	dirents, err := sys.ReadDir(storeDir)
	if err != nil {
		return entries, nil
	}
	for _, d := range dirents {
		if d.IsDir() || !isISO(d.Name()) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			return nil, fmt.Errorf(messages.SyncSeedDestFmt, storeDir, err)
		}
		entries[d.Name()] = Entry{Name: d.Name(), Size: info.Size()}
	}
	return entries, nil
}

func listISOs(sys System, dir string) ([]string, error) {
	dirents, err := sys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range dirents {
		if !d.IsDir() && isISO(d.Name()) {
			names = append(names, d.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func ensureSpace(sys System, storeDir string, need int64) error {
	free, err := sys.FreeBytes(filepath.Dir(storeDir))
	if err != nil {
		// Space preflight is advisory; the copy itself reports real
		// failures.
		return nil
	}
	if uint64(need) > free {
		return fmt.Errorf(messages.SyncNoSpaceFmt, need, free)
	}
	return nil
}

func isISO(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".iso")
}

func sorted(entries map[string]Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

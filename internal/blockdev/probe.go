package blockdev

import (
	"fmt"
	"os"

	"multistick/internal/messages"
	"multistick/internal/runner"
)

// LayoutState classifies what a probe found on the drive. It is derived,
// never stored: every run recomputes it from partition existence and
// labels.
type LayoutState int

const (
	// Fresh means no prior multistick layout was found.
	Fresh LayoutState = iota
	// Provisioned means the drive already carries both layout partitions.
	Provisioned
)

// String returns the state name.
func (s LayoutState) String() string {
	if s == Provisioned {
		return "provisioned"
	}
	return "fresh"
}

var statFunc = os.Stat

// Probe reports whether the device already carries a multistick layout.
//
// The drive is Provisioned when both partitions exist. Labels are read as
// a confidence check only: a mismatch or an unreadable label produces a
// warning, never a Fresh result, because a false Fresh invites the
// destructive path. Probing is read-only.
func Probe(r runner.Runner, dev Device) (LayoutState, []string) {
	if !partitionExists(dev.Boot.Path) || !partitionExists(dev.ISO.Path) {
		return Fresh, nil
	}

	bootLabel := readLabel(r, dev.Boot.Path)
	isoLabel := readLabel(r, dev.ISO.Path)
	if bootLabel == dev.Boot.Label && isoLabel == dev.ISO.Label {
		return Provisioned, nil
	}

	warn := fmt.Sprintf(messages.ProbeLabelMismatchFmt,
		dev.Boot.Path, bootLabel, dev.ISO.Path, isoLabel)
	return Provisioned, []string{warn}
}

// readLabel returns the filesystem label of part, or "" when blkid fails
// or reports nothing. Label reads are best-effort: labeling can fail
// independently of real prior provisioning.
func readLabel(r runner.Runner, part string) string {
	out, err := r.Output([]string{"blkid", "-s", "LABEL", "-o", "value", part})
	if err != nil {
		return ""
	}
	return out
}

func partitionExists(path string) bool {
	_, err := statFunc(path)
	return err == nil
}

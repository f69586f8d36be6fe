// Package runner executes the external commands that do the actual disk
// work (parted, mkfs, mount, ...). All mutating logic in the rest of the
// codebase goes through the Runner interface so it can be tested without a
// real device, and so dry-run is a single switch here instead of a
// conditional in every caller.
package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"multistick/internal/messages"
)

// Runner abstracts external command execution.
//
// Run is for mutating commands: it is echoed, skipped in dry-run, and run
// under sudo when elevated is set and the process is unprivileged. Output
// is for read-only inspection commands (lsblk, blkid); those always
// execute, even in dry-run, because previewing a run still requires real
// device state.
type Runner interface {
	Run(argv []string, elevated bool) error
	Output(argv []string) (string, error)
	LookPath(tool string) (string, error)
}

// Exec is the real Runner.
type Exec struct {
	// DryRun echoes mutating commands without executing them.
	DryRun bool
	// Out receives the command echo trace.
	Out io.Writer

	geteuid func() int
}

// New returns an Exec writing its trace to out.
func New(dryRun bool, out io.Writer) *Exec {
	return &Exec{DryRun: dryRun, Out: out, geteuid: os.Geteuid}
}

// Run echoes and executes argv, prepending sudo when elevated privileges
// are required but not held. In dry-run mode the command is echoed and
// skipped.
func (e *Exec) Run(argv []string, elevated bool) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	if elevated && e.euid() != 0 {
		argv = append([]string{"sudo"}, argv...)
	}

	_, _ = fmt.Fprintf(e.out(), messages.RunnerEchoFmt, strings.Join(argv, " "))
	if e.DryRun {
		_, _ = fmt.Fprintln(e.out(), messages.RunnerDryRunSkipped)
		return nil
	}

	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf(messages.RunnerFailedFmt, strings.Join(argv, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Output runs a read-only command and returns its trimmed stdout.
func (e *Exec) Output(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}
	out, err := exec.Command(argv[0], argv[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf(messages.RunnerFailedFmt, strings.Join(argv, " "), err, "")
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath reports where tool resolves on PATH.
func (e *Exec) LookPath(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf(messages.RunnerToolMissing, tool)
	}
	return path, nil
}

func (e *Exec) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

func (e *Exec) euid() int {
	if e.geteuid != nil {
		return e.geteuid()
	}
	return os.Geteuid()
}

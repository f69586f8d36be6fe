package payload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"multistick/internal/messages"
)

// Ownership selects who owns the payload store after a real run. Copies
// happen as root, so without a policy the store ends up root-owned and a
// desktop user cannot manage their own ISOs afterwards.
type Ownership string

const (
	// OwnInvoker hands the store to the non-privileged identity that
	// invoked sudo.
	OwnInvoker Ownership = "invoker"
	// OwnRoot leaves the store root-owned.
	OwnRoot Ownership = "root"
	// OwnWorld leaves the store root-owned but world-writable.
	OwnWorld Ownership = "world"
)

// ParseOwnership validates an ownership policy flag value.
func ParseOwnership(s string) (Ownership, error) {
	switch Ownership(s) {
	case OwnInvoker, OwnRoot, OwnWorld:
		return Ownership(s), nil
	}
	return "", fmt.Errorf(messages.SyncBadOwnerFmt, s)
}

// applyOwnership applies the configured policy to the store directory and
// every entry inside it. A missing store (nothing was ever copied) is a
// no-op.
func applyOwnership(sys System, storeDir string, owner Ownership, out io.Writer) error {
	if _, err := sys.Stat(storeDir); err != nil {
		return nil
	}
	if out == nil {
		out = io.Discard
	}

	switch owner {
	case OwnRoot, "":
		return nil
	case OwnWorld:
		_, _ = fmt.Fprintf(out, messages.SyncOwnershipFmt, owner)
		return chmodStore(sys, storeDir, os.FileMode(0o777), os.FileMode(0o666))
	case OwnInvoker:
		uid, gid, err := invokerIdentity(sys)
		if err != nil {
			return err
		}
		if uid < 0 {
			// Not running under sudo; the store already belongs to the
			// invoker.
			return nil
		}
		_, _ = fmt.Fprintf(out, messages.SyncOwnershipFmt, owner)
		return chownStore(sys, storeDir, uid, gid)
	}
	return fmt.Errorf(messages.SyncBadOwnerFmt, owner)
}

// invokerIdentity reads the pre-sudo identity from the environment.
// Returns -1,-1 when the process was not invoked through sudo.
func invokerIdentity(sys System) (int, int, error) {
	uidStr := sys.Getenv("SUDO_UID")
	gidStr := sys.Getenv("SUDO_GID")
	if uidStr == "" || gidStr == "" {
		return -1, -1, nil
	}
	uid, err := strconv.Atoi(uidStr)
	if err != nil {
		return 0, 0, fmt.Errorf(messages.SyncSudoUIDFmt, "SUDO_UID", uidStr, err)
	}
	gid, err := strconv.Atoi(gidStr)
	if err != nil {
		return 0, 0, fmt.Errorf(messages.SyncSudoUIDFmt, "SUDO_GID", gidStr, err)
	}
	return uid, gid, nil
}

func chownStore(sys System, storeDir string, uid, gid int) error {
	if err := sys.Chown(storeDir, uid, gid); err != nil {
		return fmt.Errorf(messages.SyncChownFailedFmt, storeDir, err)
	}
	return forEachISO(sys, storeDir, func(path string) error {
		if err := sys.Chown(path, uid, gid); err != nil {
			return fmt.Errorf(messages.SyncChownFailedFmt, path, err)
		}
		return nil
	})
}

func chmodStore(sys System, storeDir string, dirMode, fileMode os.FileMode) error {
	if err := sys.Chmod(storeDir, dirMode); err != nil {
		return fmt.Errorf(messages.SyncChownFailedFmt, storeDir, err)
	}
	return forEachISO(sys, storeDir, func(path string) error {
		if err := sys.Chmod(path, fileMode); err != nil {
			return fmt.Errorf(messages.SyncChownFailedFmt, path, err)
		}
		return nil
	})
}

func forEachISO(sys System, storeDir string, fn func(path string) error) error {
	dirents, err := sys.ReadDir(storeDir)
	if err != nil {
		return fmt.Errorf(messages.SyncSeedDestFmt, storeDir, err)
	}
	for _, d := range dirents {
		if d.IsDir() || !isISO(d.Name()) {
			continue
		}
		if err := fn(filepath.Join(storeDir, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

package payload

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// System abstracts the filesystem operations payload sync performs, so
// the reconciliation logic is testable against a fake store.
type System interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	CopyFile(src, dst string) error
	Chown(name string, uid, gid int) error
	Chmod(name string, mode os.FileMode) error
	FreeBytes(path string) (uint64, error)
	Getenv(key string) string
}

// RealSystem implements System using actual system calls.
type RealSystem struct{}

// ReadDir reads the named directory and returns all directory entries.
func (RealSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyFile copies src over dst as a full overwrite and syncs the result.
func (RealSystem) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Chown changes the owner of the named file.
func (RealSystem) Chown(name string, uid, gid int) error {
	return os.Chown(name, uid, gid)
}

// Chmod changes the mode of the named file.
func (RealSystem) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

// FreeBytes returns the free space on the filesystem holding path.
func (RealSystem) FreeBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

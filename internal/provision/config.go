package provision

import (
	"multistick/internal/mode"
	"multistick/internal/payload"
)

// Config is the immutable run configuration. It is assembled once by the
// CLI layer (flags over defaults file over built-ins) and passed
// explicitly; nothing in the run mutates it.
type Config struct {
	// Device is the target block device path, e.g. /dev/sdb.
	Device string
	// ISODir optionally points at the source payload directory. Empty
	// means resync nothing and regenerate the menu from what is already
	// on the drive.
	ISODir string
	// MountBase is the directory under which the per-device mount point
	// is created, so separate runs against separate devices never share
	// mount points.
	MountBase string
	// BootSizeMB is the boot partition size in MiB.
	BootSizeMB int
	// PayloadFS is the payload partition filesystem: ext4 or exfat.
	PayloadFS string
	// ModePref is the requested operating mode before resolution.
	ModePref mode.Preference
	// Owner is the payload store ownership policy.
	Owner payload.Ownership
	// AllowFetch permits downloading the wimboot helper.
	AllowFetch bool
	// WimbootURL overrides the helper download location when non-empty.
	WimbootURL string
	// DryRun previews every mutating action without executing it.
	DryRun bool
	// AssumeYes skips interactive confirmation; destructive defaults are
	// never taken on its behalf.
	AssumeYes bool
}

// MountPoints returns the boot and payload mount points for the
// configured device.
func (c Config) MountPoints() (bootMount, isoMount string) {
	base := perDeviceBase(c.MountBase, c.Device)
	return base + "/boot", base + "/iso"
}

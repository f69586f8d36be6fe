// Package blockdev models the target drive: its two-partition layout,
// partition naming, and probing of any layout left by a previous run.
package blockdev

import (
	"fmt"
	"strings"
	"unicode"

	"multistick/internal/runner"
)

// Partition labels fixed by the multistick layout. GRUB's generated menu
// locates both partitions by these labels, so they are part of the on-disk
// contract, not a cosmetic choice.
const (
	BootLabel    = "MULTIBOOT"
	PayloadLabel = "MULTISTICK"
)

// Role identifies which half of the layout a partition holds.
type Role string

const (
	RoleBoot    Role = "boot"
	RolePayload Role = "payload"
)

// Partition describes one partition of the multistick layout.
type Partition struct {
	Path  string
	Role  Role
	Label string
	FS    string
}

// Device is the target drive plus its derived partition pair.
type Device struct {
	Path string
	Boot Partition
	ISO  Partition
}

// New derives the partition layout for the device at path. payloadFS is
// the filesystem kind for the payload partition (ext4 or exfat).
func New(path, payloadFS string) Device {
	return Device{
		Path: path,
		Boot: Partition{Path: PartitionPath(path, 1), Role: RoleBoot, Label: BootLabel, FS: "ext4"},
		ISO:  Partition{Path: PartitionPath(path, 2), Role: RolePayload, Label: PayloadLabel, FS: payloadFS},
	}
}

// PartitionPath returns the kernel name of partition n on device. Devices
// whose identifier ends in a digit (nvme0n1, mmcblk0, loop0) take a "p"
// separator before the partition index; plain sd-style names do not.
func PartitionPath(device string, n int) string {
	if device == "" {
		return ""
	}
	last := rune(device[len(device)-1])
	if unicode.IsDigit(last) {
		return fmt.Sprintf("%sp%d", device, n)
	}
	return fmt.Sprintf("%s%d", device, n)
}

// Info is one row of the block device listing.
type Info struct {
	Path string
	Size string
	// Model is the hardware model string, possibly empty.
	Model string
	// Transport is the bus (usb, sata, nvme, ...), possibly empty.
	Transport string
}

// List returns all disk-type block devices visible to lsblk. Partitions
// and loop devices are excluded. The pair output format (-P) keeps
// multi-word model strings and empty transports unambiguous.
func List(r runner.Runner) ([]Info, error) {
	out, err := r.Output([]string{"lsblk", "-d", "-P", "-o", "NAME,SIZE,MODEL,TRAN,TYPE"})
	if err != nil {
		return nil, err
	}

	var devices []Info
	for _, line := range strings.Split(out, "\n") {
		row := parsePairs(line)
		if row["TYPE"] != "disk" || row["NAME"] == "" {
			continue
		}
		devices = append(devices, Info{
			Path:      "/dev/" + row["NAME"],
			Size:      row["SIZE"],
			Model:     strings.TrimSpace(row["MODEL"]),
			Transport: row["TRAN"],
		})
	}
	return devices, nil
}

// parsePairs decodes one KEY="value" line of lsblk -P output.
func parsePairs(line string) map[string]string {
	pairs := map[string]string{}
	for len(line) > 0 {
		line = strings.TrimLeft(line, " ")
		eq := strings.Index(line, `="`)
		if eq < 0 {
			break
		}
		key := line[:eq]
		rest := line[eq+2:]
		end := strings.Index(rest, `"`)
		if end < 0 {
			break
		}
		pairs[key] = rest[:end]
		line = rest[end+1:]
	}
	return pairs
}

// Exists reports whether path appears in the disk listing.
func Exists(r runner.Runner, path string) (bool, error) {
	devices, err := List(r)
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if d.Path == path {
			return true, nil
		}
	}
	return false, nil
}

package blockdev

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPartitions redirects partition existence checks so only the named
// paths exist.
func withPartitions(t *testing.T, present ...string) {
	t.Helper()
	orig := statFunc
	statFunc = func(name string) (os.FileInfo, error) {
		for _, p := range present {
			if p == name {
				return os.Stat(".")
			}
		}
		return nil, os.ErrNotExist
	}
	t.Cleanup(func() { statFunc = orig })
}

func TestProbeFreshWhenPartitionsMissing(t *testing.T) {
	withPartitions(t /* none */)
	dev := New("/dev/sdb", "ext4")

	state, warns := Probe(&fakeRunner{}, dev)
	assert.Equal(t, Fresh, state)
	assert.Empty(t, warns)
}

func TestProbeFreshWhenOnlyBootPartitionExists(t *testing.T) {
	withPartitions(t, "/dev/sdb1")
	dev := New("/dev/sdb", "ext4")

	state, _ := Probe(&fakeRunner{}, dev)
	assert.Equal(t, Fresh, state)
}

func TestProbeProvisionedWithMatchingLabels(t *testing.T) {
	withPartitions(t, "/dev/sdb1", "/dev/sdb2")
	r := &fakeRunner{outputs: map[string]string{
		"blkid -s LABEL -o value /dev/sdb1": BootLabel,
		"blkid -s LABEL -o value /dev/sdb2": PayloadLabel,
	}}

	state, warns := Probe(r, New("/dev/sdb", "ext4"))
	assert.Equal(t, Provisioned, state)
	assert.Empty(t, warns)
}

// Both partitions existing is sufficient: an unreadable label must never
// push the probe toward the destructive path.
func TestProbeProvisionedWhenLabelReadFails(t *testing.T) {
	withPartitions(t, "/dev/sdb1", "/dev/sdb2")
	r := &fakeRunner{errs: map[string]error{"blkid": fmt.Errorf("blkid exploded")}}

	state, warns := Probe(r, New("/dev/sdb", "ext4"))
	assert.Equal(t, Provisioned, state)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "labels do not match")
}

func TestProbeProvisionedWithMismatchedLabelsWarns(t *testing.T) {
	withPartitions(t, "/dev/sdb1", "/dev/sdb2")
	r := &fakeRunner{outputs: map[string]string{
		"blkid -s LABEL -o value /dev/sdb1": "WINDOWS",
		"blkid -s LABEL -o value /dev/sdb2": "DATA",
	}}

	state, warns := Probe(r, New("/dev/sdb", "ext4"))
	assert.Equal(t, Provisioned, state)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], `"WINDOWS"`)
}

func TestLayoutStateString(t *testing.T) {
	assert.Equal(t, "fresh", Fresh.String())
	assert.Equal(t, "provisioned", Provisioned.String())
}

func TestMounted(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "mounts")
	content := "/dev/sdb1 /mnt/multistick/sdb/boot ext4 rw 0 0\n" +
		"/dev/sdb2 /mnt/with\\040space/iso ext4 rw 0 0\n"
	require.NoError(t, os.WriteFile(table, []byte(content), 0o644))

	orig := mountsFile
	mountsFile = table
	t.Cleanup(func() { mountsFile = orig })

	assert.True(t, Mounted("/mnt/multistick/sdb/boot"))
	assert.True(t, Mounted("/mnt/with space/iso"))
	assert.False(t, Mounted("/mnt/multistick/sdb/iso"))
}

func TestMountedUnreadableTable(t *testing.T) {
	orig := mountsFile
	mountsFile = filepath.Join(t.TempDir(), "absent")
	t.Cleanup(func() { mountsFile = orig })

	assert.False(t, Mounted("/mnt/anything"))
}

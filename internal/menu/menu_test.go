package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multistick/internal/payload"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want Family
	}{
		{"Windows11_23H2.iso", FamilyWindows},
		{"HirensBootCD-PE.iso", FamilyWindows},
		{"nixos-24.05-x86_64.iso", FamilyNixOS},
		{"debian-12-netinst.iso", FamilyNetinst},
		{"mini.iso", FamilyNetinst},
		{"tails-amd64-6.4.iso", FamilyTails},
		{"systemrescue-11.01.iso", FamilyRescue},
		{"ubuntu-24.04-desktop.iso", FamilyDebianLive},
		{"linuxmint-21.3-cinnamon.iso", FamilyDebianLive},
		{"kali-linux-2024.2-live.iso", FamilyDebianLive},
		{"archlinux-2024.06.01.iso", FamilyArch},
		{"manjaro-kde-24.0.iso", FamilyArch},
		{"Fedora-Workstation-40.iso", FamilyRedHat},
		{"rocky-9.4-dvd.iso", FamilyRedHat},
		{"slackware64-15.0.iso", FamilyGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.name), tc.name)
	}
}

// tails contains no debian-live token, but a hypothetical
// "tails-debian-live.iso" must still hit the tails rule: the table is
// first-match-wins and the more specific family sits higher.
func TestClassifyOrderIsFirstMatchWins(t *testing.T) {
	assert.Equal(t, FamilyTails, Classify("tails-ubuntu-remix.iso"))
	assert.Equal(t, FamilyNetinst, Classify("debian-12-netinst-kali.iso"))
	assert.Equal(t, FamilyWindows, Classify("windows-arch-dualboot.iso"))
}

func TestGenerateDeterministic(t *testing.T) {
	entries := []payload.Entry{
		{Name: "ubuntu-24.04-desktop.iso", Size: 5 << 30},
		{Name: "archlinux-2024.06.01.iso", Size: 1 << 30},
	}
	reversed := []payload.Entry{entries[1], entries[0]}

	a, _ := Generator{}.Generate(entries)
	b, _ := Generator{}.Generate(reversed)
	assert.Equal(t, a, b, "output must not depend on input order")
}

func TestGenerateOrdersEntriesByName(t *testing.T) {
	out, warns := Generator{}.Generate([]payload.Entry{
		{Name: "ubuntu-24.04-desktop.iso"},
		{Name: "archlinux-2024.06.01.iso"},
	})
	require.Empty(t, warns)

	arch := strings.Index(out, "archlinux-2024.06.01.iso")
	ubuntu := strings.Index(out, "ubuntu-24.04-desktop.iso")
	require.True(t, arch >= 0 && ubuntu >= 0)
	assert.Less(t, arch, ubuntu)

	// Each entry gets its family's template.
	assert.Contains(t, out, "img_loop=$isofile")
	assert.Contains(t, out, "boot=casper")
}

func TestGenerateEmptySet(t *testing.T) {
	out, warns := Generator{}.Generate(nil)
	assert.Empty(t, warns)

	assert.Contains(t, out, "set default=0")
	assert.Contains(t, out, "search --no-floppy --set=isopart --label MULTISTICK")
	assert.Contains(t, out, "fwsetup")
	assert.Contains(t, out, "reboot")
	assert.Contains(t, out, "halt")
	assert.NotContains(t, out, "loopback loop")
}

func TestGenerateInvokesHelperForWindows(t *testing.T) {
	calls := 0
	g := Generator{EnsureHelper: func() []string {
		calls++
		return []string{"wimboot missing"}
	}}

	out, warns := g.Generate([]payload.Entry{
		{Name: "Windows11.iso"},
		{Name: "WinPE-rescue.iso"},
	})
	assert.Equal(t, 1, calls, "helper hook runs once per generation")
	assert.Equal(t, []string{"wimboot missing"}, warns)
	assert.Contains(t, out, "/grub/wimboot")
	assert.Contains(t, out, "newc:bootmgr")
}

func TestGenerateSkipsHelperWithoutWindows(t *testing.T) {
	g := Generator{EnsureHelper: func() []string {
		t.Fatal("helper hook must not run")
		return nil
	}}
	_, warns := g.Generate([]payload.Entry{{Name: "ubuntu-24.04.iso"}})
	assert.Empty(t, warns)
}

func TestNeedsHelper(t *testing.T) {
	assert.True(t, NeedsHelper([]payload.Entry{{Name: "Windows11.iso"}}))
	assert.False(t, NeedsHelper([]payload.Entry{{Name: "ubuntu-24.04.iso"}}))
	assert.False(t, NeedsHelper(nil))
}

func TestEntryLabel(t *testing.T) {
	assert.Equal(t, "ubuntu-24.04-desktop", entryLabel("ubuntu-24.04-desktop.iso"))
	assert.Equal(t, "Windows 11 23H2", entryLabel("Windows_11_23H2.ISO"))
}

func TestBlocksReferencePayloadPath(t *testing.T) {
	for _, name := range []string{
		"Windows11.iso",
		"nixos-24.05.iso",
		"debian-netinst.iso",
		"tails-6.4.iso",
		"systemrescue-11.iso",
		"ubuntu-24.04.iso",
		"archlinux-2024.iso",
		"fedora-40.iso",
		"unknown-thing.iso",
	} {
		block := matchRule(name).block(entryLabel(name), name)
		assert.Contains(t, block, "/isos/"+name, name)
		assert.Contains(t, block, "menuentry", name)
	}
}

// Package menu turns the synchronized payload set into the grub.cfg boot
// menu. Generation is a pure function of the entry set: the same entries
// always yield byte-identical output, which is what makes update runs
// idempotent.
package menu

import (
	"fmt"
	"sort"
	"strings"

	"multistick/internal/blockdev"
	"multistick/internal/payload"
)

// ConfigRelPath is where the menu lives relative to the boot partition
// root.
const ConfigRelPath = "grub/grub.cfg"

// Generator produces the boot menu document.
type Generator struct {
	// EnsureHelper is invoked once when any entry classifies as the
	// Windows family, before the document is returned. It reports
	// warnings (helper missing, fetch failed); nil disables the hook.
	EnsureHelper func() []string
}

// Generate renders the full menu for entries and returns it with any
// helper-provisioning warnings. Entries are emitted in lexicographic name
// order regardless of input order. An empty set still yields the preamble
// and the utility entries.
func (g Generator) Generate(entries []payload.Entry) (string, []string) {
	ordered := make([]payload.Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	var warnings []string
	var b strings.Builder
	b.WriteString(preamble())

	helperNeeded := false
	for _, e := range ordered {
		r := matchRule(e.Name)
		if r.family == FamilyWindows {
			helperNeeded = true
		}
		b.WriteString("\n")
		b.WriteString(r.block(entryLabel(e.Name), e.Name))
	}

	b.WriteString(trailer())

	if helperNeeded && g.EnsureHelper != nil {
		warnings = append(warnings, g.EnsureHelper()...)
	}
	return b.String(), warnings
}

// NeedsHelper reports whether any entry requires the wimboot helper.
func NeedsHelper(entries []payload.Entry) bool {
	for _, e := range entries {
		if Classify(e.Name) == FamilyWindows {
			return true
		}
	}
	return false
}

// entryLabel derives the menu label from the file name: extension
// stripped, underscores opened up.
func entryLabel(name string) string {
	label := name
	if i := strings.LastIndex(strings.ToLower(label), ".iso"); i >= 0 {
		label = label[:i]
	}
	return strings.ReplaceAll(label, "_", " ")
}

// preamble loads the modules the entries rely on and locates both layout
// partitions by label, with a positional fallback for drives whose labels
// were lost.
func preamble() string {
	var b strings.Builder
	b.WriteString("# GRUB2 multiboot menu\n")
	b.WriteString("# Generated by multistick; edits are overwritten on the next run.\n")
	b.WriteString("\n")
	b.WriteString("set default=0\n")
	b.WriteString("set timeout=10\n")
	b.WriteString("\n")
	b.WriteString("insmod part_msdos\n")
	b.WriteString("insmod ext2\n")
	b.WriteString("insmod exfat\n")
	b.WriteString("insmod iso9660\n")
	b.WriteString("insmod loopback\n")
	b.WriteString("insmod search_label\n")
	b.WriteString("insmod all_video\n")
	b.WriteString("insmod gfxterm\n")
	b.WriteString("terminal_output gfxterm\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "search --no-floppy --set=isopart --label %s\n", blockdev.PayloadLabel)
	b.WriteString("if [ -z \"$isopart\" ]; then\n")
	b.WriteString("    set isopart=hd0,msdos2\n")
	b.WriteString("fi\n")
	b.WriteString("\n")
	b.WriteString("### Boot entries ###\n")
	return b.String()
}

// trailer appends the fixed utility entries, present for every payload
// set including the empty one.
func trailer() string {
	var b strings.Builder
	b.WriteString("\n### System utilities ###\n")
	b.WriteString("menuentry \"UEFI Firmware Settings\" {\n")
	b.WriteString("    fwsetup\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	b.WriteString("menuentry \"Reboot\" {\n")
	b.WriteString("    reboot\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	b.WriteString("menuentry \"Power Off\" {\n")
	b.WriteString("    halt\n")
	b.WriteString("}\n")
	return b.String()
}

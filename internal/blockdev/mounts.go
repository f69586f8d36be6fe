package blockdev

import (
	"os"
	"strings"
)

var mountsFile = "/proc/self/mounts"

// Mounted reports whether path is currently a mount point. Unreadable
// mount tables count as not mounted; callers only use this for
// best-effort cleanup decisions.
func Mounted(path string) bool {
	data, err := os.ReadFile(mountsFile)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && unescapeMount(fields[1]) == path {
			return true
		}
	}
	return false
}

// unescapeMount decodes the octal escapes fstab-format files use for
// spaces and tabs in mount points.
func unescapeMount(s string) string {
	replacer := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return replacer.Replace(s)
}

package menu

import "strings"

// Family classifies a payload and selects its chainload template.
type Family string

const (
	FamilyWindows    Family = "windows"
	FamilyNixOS      Family = "nixos"
	FamilyNetinst    Family = "debian-netinst"
	FamilyTails      Family = "tails"
	FamilyRescue     Family = "rescue"
	FamilyDebianLive Family = "debian-live"
	FamilyArch       Family = "arch"
	FamilyRedHat     Family = "redhat"
	FamilyGeneric    Family = "generic"
)

// rule pairs a family's match tokens with its template builder.
type rule struct {
	family Family
	tokens []string
	block  func(label, isoName string) string
}

// rules is evaluated first-match-wins against the lower-cased file name.
// The order is a contract: more specific families sit above broader ones
// (tails before debian-live, debian-live before the casper fallback), and
// the generic rule matches everything so classification never fails. Add
// new families by inserting a row, not by editing existing ones.
var rules = []rule{
	{FamilyWindows, []string{"windows", "winpe", "win-pe", "hirens"}, windowsBlock},
	{FamilyNixOS, []string{"nixos"}, nixosBlock},
	{FamilyNetinst, []string{"netinst", "mini.iso"}, netinstBlock},
	{FamilyTails, []string{"tails"}, tailsBlock},
	{FamilyRescue, []string{"sysresc", "systemrescue", "rescatux"}, rescueBlock},
	{FamilyDebianLive, []string{"ubuntu", "kubuntu", "xubuntu", "lubuntu", "mint", "elementary", "pop-os", "pop_os", "zorin", "kali", "debian-live"}, debianLiveBlock},
	{FamilyArch, []string{"arch", "manjaro", "endeavour", "artix"}, archBlock},
	{FamilyRedHat, []string{"fedora", "centos", "rhel", "alma", "rocky", "nobara"}, redhatBlock},
	{FamilyGeneric, nil, genericBlock},
}

// Classify maps a payload file name to its family. The generic rule has
// no tokens and matches unconditionally, so every name classifies.
func Classify(name string) Family {
	return matchRule(name).family
}

func matchRule(name string) rule {
	lower := strings.ToLower(name)
	for _, r := range rules {
		if len(r.tokens) == 0 {
			return r
		}
		for _, tok := range r.tokens {
			if strings.Contains(lower, tok) {
				return r
			}
		}
	}
	// Unreachable: the generic rule is token-less.
	return rules[len(rules)-1]
}

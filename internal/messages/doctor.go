package messages

// Doctor messages for environment health checks.
const (
	DoctorUse   = "doctor"
	DoctorShort = "Check that the environment can provision a drive"

	DoctorHead = "multistick environment check\n"

	DoctorCheckNameTools     = "tools"
	DoctorCheckNamePrivilege = "privilege"
	DoctorCheckNameConfig    = "config"

	DoctorToolFoundFmt       = "%s found (%s)"
	DoctorToolMissingFmt     = "%s not found in PATH"
	DoctorToolMissingRecFmt  = "install %s (usually packaged as %s)"
	DoctorRunningAsRoot      = "running as root; --no-dry-run is available"
	DoctorNotRoot            = "not running as root"
	DoctorNotRootRecommend   = "real runs need sudo; dry-run works unprivileged"
	DoctorConfigOKFmt        = "defaults file %s parsed"
	DoctorConfigAbsentFmt    = "no defaults file at %s (flags and built-ins apply)"
	DoctorConfigInvalidFmt   = "defaults file %s is invalid: %v"
	DoctorConfigInvalidRec   = "fix or remove the defaults file"
	DoctorSummaryFmt         = "\n%d ok, %d warnings, %d failures\n"
	DoctorFailSummaryExitFmt = "doctor found %d failing check(s)"
)

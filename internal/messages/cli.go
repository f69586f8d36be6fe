package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "multistick"
	// RootShort is the short description for the root command.
	RootShort = "Create and maintain GRUB2 multiboot USB drives"
	RootLong  = "multistick provisions a removable drive into a GRUB2 multiboot launcher:\n" +
		"a small boot partition carrying GRUB plus a generated menu, and a payload\n" +
		"partition carrying bootable ISO images. Runs are a preview by default;\n" +
		"pass --no-dry-run (as root) to apply changes."

	// CreateUse is the create command name.
	CreateUse   = "create"
	CreateShort = "Provision or update a multiboot USB drive"

	CreateFlagDevice    = "Target block device (e.g. /dev/sdb); prompts interactively when omitted"
	CreateFlagISODir    = "Directory containing *.iso payloads to copy onto the drive"
	CreateFlagMountBase = "Base directory for per-device mount points"
	CreateFlagBootSize  = "Boot partition size in MiB"
	CreateFlagPayloadFS = "Filesystem for the payload partition (ext4 or exfat)"
	CreateFlagMode      = "Operating mode: auto, wipe, or update"
	CreateFlagOwner     = "Ownership applied to copied payloads: invoker, root, or world"
	CreateFlagFetch     = "Allow downloading the wimboot helper when a Windows payload needs it"
	CreateFlagDryRun    = "Preview all actions without changing the device"
	CreateFlagNoDryRun  = "Apply changes for real (requires root)"
	CreateFlagYes       = "Skip interactive confirmations (implies the non-destructive choice on provisioned drives)"
	CreateFlagConfig    = "Path to a TOML defaults file"

	CreateNoDryRunNeedsRoot = "--no-dry-run requires root; re-run under sudo"
	CreateISODirMissingFmt  = "ISO directory not found: %s"
	CreateDeviceRequired    = "no target device selected; pass --device or run interactively"
	CreateDeviceUnknownFmt  = "device %s not present in the block device listing"

	// ListDevicesUse is the list-devices command name.
	ListDevicesUse   = "list-devices"
	ListDevicesShort = "List candidate block devices"
	ListDevicesNone  = "no block devices detected"

	// MenuUse is the menu command name.
	MenuUse   = "menu"
	MenuShort = "Regenerate the boot menu on an already-mounted drive"

	MenuFlagBootMount    = "Mount point of the boot partition"
	MenuFlagPayloadMount = "Mount point of the payload partition"
	MenuWrittenFmt       = "boot menu written: %s (%d entries)\n"

	SelectDevicePrompt   = "Select target device"
	ConfirmWipePromptFmt = "ALL DATA on %s (%s) will be erased. Continue?"
	ConfirmWipeDeclined  = "aborted: destructive action declined"
	ChooseModePromptFmt  = "%s already carries a multistick layout. How should it be handled?"
	ChooseModeUpdate     = "Update (keep payloads, resync and regenerate menu)"
	ChooseModeWipe       = "Wipe (erase and re-provision from scratch)"

	PromptNeedsTerminal = "interactive confirmation requires a terminal; re-run with --yes or an explicit --mode"

	RunDryRunDone  = "Dry-run complete; no changes were made. Re-run with --no-dry-run to apply."
	RunSuccessFmt  = "Multiboot drive ready. Boot from %s to use the GRUB menu.\n"
	RunSummaryHead = "Run configuration:"
)

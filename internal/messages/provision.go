package messages

// Messages emitted while probing, formatting, syncing, and generating the menu.
const (
	ProbeLayoutProvisioned = "detected an existing multistick layout (both partitions present)"
	ProbeLayoutFresh       = "no existing multistick layout detected"
	ProbeLabelMismatchFmt  = "partition labels do not match the expected layout (%s=%q, %s=%q); treating the drive as provisioned anyway"
	ProbeWarnFmt           = "warning: %s\n"

	FormatWipingFmt      = "Wiping %s\n"
	FormatLayoutHead     = "Creating partition layout:"
	FormatLayoutBootFmt  = "  partition 1 (boot):    %d MiB, ext4, label %s\n"
	FormatLayoutISOFmt   = "  partition 2 (payload): remaining space, %s, label %s\n"
	FormatInstallGrubFmt = "Installing GRUB to %s\n"

	MountHeadFmt   = "Mounting %s under %s\n"
	UnmountHeadFmt = "Unmounting %s\n"
	UnmountWarnFmt = "warning: failed to unmount %s: %v\n"

	SyncHead           = "Syncing ISO payloads"
	SyncNoSourceISOs   = "warning: no *.iso files found in the source directory"
	SyncCopyFmt        = "  copy %-45s %8.2f GiB\n"
	SyncKeepFmt        = "  keep %-45s %8.2f GiB\n"
	SyncCopyFailedFmt  = "copy %s: %w"
	SyncNoSpaceFmt     = "not enough free space on the payload partition: need %d bytes, have %d"
	SyncOwnershipFmt   = "  chown payload store to %s\n"
	SyncStatSourceFmt  = "stat source payload %s: %w"
	SyncReadSourceFmt  = "read source directory %s: %w"
	SyncSeedDestFmt    = "read payload store %s: %w"
	SyncMkdirStoreFmt  = "create payload store %s: %w"
	SyncBadOwnerFmt    = "unknown ownership policy %q (use invoker, root, or world)"
	SyncSudoUIDFmt     = "parse invoking identity from %s=%q: %w"
	SyncChownFailedFmt = "apply ownership policy to %s: %w"

	MenuGenerateHead    = "Generating boot menu"
	MenuEntryFmt        = "  %-45s -> %s\n"
	MenuDiffHeadFmt     = "grub.cfg changes for %s:\n"
	MenuNoChanges       = "grub.cfg unchanged"
	MenuWriteFmt        = "Writing %s\n"
	MenuWriteFailedFmt  = "write boot menu %s: %w"
	MenuCurrentName     = "grub.cfg (current)"
	MenuRegeneratedName = "grub.cfg (regenerated)"

	AssistPresentFmt     = "wimboot helper already present at %s\n"
	AssistFetchingFmt    = "Fetching wimboot helper from %s\n"
	AssistFetchDeniedFmt = "warning: a Windows payload needs the wimboot helper but fetching is disabled;\n" +
		"  its menu entry is generated but will not boot until %s exists (re-run with --allow-fetch)\n"
	AssistFetchFailedFmt  = "warning: fetching the wimboot helper failed (%v); affected menu entries will not boot\n"
	AssistBadStatusFmt    = "unexpected status %s from %s"
	AssistCreateReqFmt    = "build wimboot request: %w"
	AssistWriteHelperFmt  = "write wimboot helper %s: %w"
	AssistChecksumZero    = "wimboot download was empty"
	AssistFetchSkippedDry = "  [dry-run: wimboot fetch skipped]"
)

// Runner messages: command echo and failure wrapping.
const (
	RunnerEchoFmt       = "→ %s\n"
	RunnerDryRunSkipped = "  [dry-run: skipped]"
	RunnerFailedFmt     = "%s: %w: %s"
	RunnerToolMissing   = "tool %q not found in PATH"
)

// Package doctor checks that the host can actually provision a drive:
// the external tools exist, privilege is available for real runs, and the
// defaults file (if any) parses.
package doctor

import (
	"fmt"
	"os"

	"multistick/internal/config"
	"multistick/internal/messages"
	"multistick/internal/runner"
)

// Status classifies a single check outcome.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is one check outcome with an optional recommendation.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// requiredTool pairs a tool with the package that usually ships it, for
// the recommendation text.
type requiredTool struct {
	name string
	pkg  string
}

// RequiredTools are the external commands a real (non-dry-run) create
// needs. Missing any of them is fatal before the run mutates anything.
var RequiredTools = []requiredTool{
	{"lsblk", "util-linux"},
	{"blkid", "util-linux"},
	{"wipefs", "util-linux"},
	{"parted", "parted"},
	{"mkfs.ext4", "e2fsprogs"},
	{"mkfs.exfat", "exfatprogs"},
	{"mount", "util-linux"},
	{"umount", "util-linux"},
	{"grub-install", "grub2 or grub-pc"},
}

var geteuidFunc = os.Geteuid

// CheckTools verifies every required external tool resolves on PATH.
func CheckTools(r runner.Runner) []Result {
	var results []Result
	for _, tool := range RequiredTools {
		path, err := r.LookPath(tool.name)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameTools,
				Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, tool.name),
				Recommendation: fmt.Sprintf(messages.DoctorToolMissingRecFmt, tool.name, tool.pkg),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameTools,
			Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, tool.name, path),
		})
	}
	return results
}

// CheckPrivilege reports whether real runs are possible as-is.
func CheckPrivilege() Result {
	if geteuidFunc() == 0 {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePrivilege,
			Message:   messages.DoctorRunningAsRoot,
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNamePrivilege,
		Message:        messages.DoctorNotRoot,
		Recommendation: messages.DoctorNotRootRecommend,
	}
}

// CheckConfig verifies the defaults file parses when present.
func CheckConfig(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigAbsentFmt, path),
		}
	}
	if _, err := config.Load(path); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigInvalidFmt, path, err),
			Recommendation: messages.DoctorConfigInvalidRec,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigOKFmt, path),
	}
}

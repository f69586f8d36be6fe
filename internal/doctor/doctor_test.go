package doctor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	missing map[string]bool
}

func (f fakeRunner) Run([]string, bool) error { return nil }

func (f fakeRunner) Output([]string) (string, error) { return "", nil }

func (f fakeRunner) LookPath(tool string) (string, error) {
	if f.missing[tool] {
		return "", errors.New("not found")
	}
	return "/usr/sbin/" + tool, nil
}

func TestCheckToolsAllPresent(t *testing.T) {
	results := CheckTools(fakeRunner{})
	require.Len(t, results, len(RequiredTools))
	for _, r := range results {
		assert.Equal(t, StatusOK, r.Status, r.Message)
	}
}

func TestCheckToolsReportsMissing(t *testing.T) {
	results := CheckTools(fakeRunner{missing: map[string]bool{"parted": true, "grub-install": true}})

	var failed []string
	for _, r := range results {
		if r.Status == StatusFail {
			failed = append(failed, r.Message)
			assert.NotEmpty(t, r.Recommendation)
		}
	}
	require.Len(t, failed, 2)
	assert.Contains(t, failed[0], "parted")
	assert.Contains(t, failed[1], "grub-install")
}

func TestCheckPrivilege(t *testing.T) {
	orig := geteuidFunc
	t.Cleanup(func() { geteuidFunc = orig })

	geteuidFunc = func() int { return 0 }
	r := CheckPrivilege()
	assert.Equal(t, StatusOK, r.Status)

	geteuidFunc = func() int { return 1000 }
	r = CheckPrivilege()
	assert.Equal(t, StatusWarn, r.Status)
	assert.NotEmpty(t, r.Recommendation)
}

func TestCheckConfigAbsent(t *testing.T) {
	r := CheckConfig(filepath.Join(t.TempDir(), "config.toml"))
	assert.Equal(t, StatusOK, r.Status)
}

func TestCheckConfigValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`payload-fs = "ext4"`), 0o644))

	r := CheckConfig(path)
	assert.Equal(t, StatusOK, r.Status)
}

func TestCheckConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`payload-fs = "zfs"`), 0o644))

	r := CheckConfig(path)
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "zfs")
}

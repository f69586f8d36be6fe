package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multistick/internal/blockdev"
)

type fakeChooser struct {
	choice OperationMode
	err    error
	asked  bool
	device string
}

func (f *fakeChooser) ChooseMode(device string) (OperationMode, error) {
	f.asked = true
	f.device = device
	return f.choice, f.err
}

func TestParsePreference(t *testing.T) {
	for _, valid := range []string{"auto", "wipe", "update"} {
		pref, err := ParsePreference(valid)
		require.NoError(t, err)
		assert.Equal(t, Preference(valid), pref)
	}

	_, err := ParsePreference("destroy")
	require.Error(t, err)
}

func TestResolveExplicitPreferenceWins(t *testing.T) {
	chooser := &fakeChooser{}

	// Explicit intent overrides whatever the probe found.
	m, err := Resolve("/dev/sdb", blockdev.Provisioned, PrefWipe, false, chooser)
	require.NoError(t, err)
	assert.Equal(t, Wipe, m)

	m, err = Resolve("/dev/sdb", blockdev.Fresh, PrefUpdate, false, chooser)
	require.NoError(t, err)
	assert.Equal(t, Update, m)

	assert.False(t, chooser.asked)
}

func TestResolveAutoOnFreshIsWipe(t *testing.T) {
	chooser := &fakeChooser{}
	m, err := Resolve("/dev/sdb", blockdev.Fresh, PrefAuto, false, chooser)
	require.NoError(t, err)
	assert.Equal(t, Wipe, m)
	assert.False(t, chooser.asked)
}

// Automation must never pick the destructive path on its own.
func TestResolveAutoProvisionedAutomationIsUpdate(t *testing.T) {
	chooser := &fakeChooser{choice: Wipe}
	m, err := Resolve("/dev/sdb", blockdev.Provisioned, PrefAuto, true, chooser)
	require.NoError(t, err)
	assert.Equal(t, Update, m)
	assert.False(t, chooser.asked, "automation must not prompt")
}

func TestResolveAutoProvisionedAsksHuman(t *testing.T) {
	chooser := &fakeChooser{choice: Wipe}
	m, err := Resolve("/dev/sdb", blockdev.Provisioned, PrefAuto, false, chooser)
	require.NoError(t, err)
	assert.Equal(t, Wipe, m)
	assert.True(t, chooser.asked)
	assert.Equal(t, "/dev/sdb", chooser.device)
}

func TestResolveAutoProvisionedAbort(t *testing.T) {
	chooser := &fakeChooser{err: ErrAborted}
	_, err := Resolve("/dev/sdb", blockdev.Provisioned, PrefAuto, false, chooser)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestResolveNoChooserAborts(t *testing.T) {
	_, err := Resolve("/dev/sdb", blockdev.Provisioned, PrefAuto, false, nil)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestOperationModeString(t *testing.T) {
	assert.Equal(t, "wipe", Wipe.String())
	assert.Equal(t, "update", Update.String())
}

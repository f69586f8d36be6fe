package promptui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multistick/internal/blockdev"
	"multistick/internal/mode"
)

func stubForm(t *testing.T, err error) {
	t.Helper()
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = func(*huh.Form) error { return err }
}

func TestConfirmDefaultsToNo(t *testing.T) {
	stubForm(t, nil)
	ok, err := UI{}.Confirm("erase everything?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChooseModeDefaultsToUpdate(t *testing.T) {
	stubForm(t, nil)
	m, err := UI{}.ChooseMode("/dev/sdb")
	require.NoError(t, err)
	assert.Equal(t, mode.Update, m)
}

func TestChooseModeAbortMapsToErrAborted(t *testing.T) {
	stubForm(t, huh.ErrUserAborted)
	_, err := UI{}.ChooseMode("/dev/sdb")
	assert.ErrorIs(t, err, mode.ErrAborted)
}

func TestConfirmPropagatesOtherErrors(t *testing.T) {
	stubForm(t, errors.New("terminal gone"))
	_, err := UI{}.Confirm("sure?")
	require.Error(t, err)
	assert.NotErrorIs(t, err, mode.ErrAborted)
}

func TestSelectDeviceNoDevices(t *testing.T) {
	_, err := UI{}.SelectDevice(nil)
	assert.Error(t, err)
}

func TestSelectDeviceAbort(t *testing.T) {
	stubForm(t, huh.ErrUserAborted)
	_, err := UI{}.SelectDevice([]blockdev.Info{{Path: "/dev/sdb", Size: "14.9G", Transport: "usb"}})
	assert.ErrorIs(t, err, mode.ErrAborted)
}

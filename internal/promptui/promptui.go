// Package promptui renders the interactive prompts: the destructive-wipe
// confirmation, the wipe-vs-update choice, and the device picker. All
// prompt output goes to stderr so the command trace on stdout stays
// machine-readable.
package promptui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"multistick/internal/blockdev"
	"multistick/internal/messages"
	"multistick/internal/mode"
)

// runFormFunc is swapped in tests to avoid driving a real terminal.
var runFormFunc = func(form *huh.Form) error {
	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	return form.Run()
}

// UI implements the interactive prompts over huh forms.
type UI struct{}

// Confirm renders a yes/no prompt and reports the answer.
func (UI) Confirm(title string) (bool, error) {
	var answer bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&answer),
	))
	if err := runForm(form); err != nil {
		return false, err
	}
	return answer, nil
}

// ChooseMode asks whether a provisioned drive should be updated or wiped.
// Update is the pre-selected choice; backing out aborts the run.
func (UI) ChooseMode(device string) (mode.OperationMode, error) {
	choice := messages.ChooseModeUpdate
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf(messages.ChooseModePromptFmt, device)).
			Options(
				huh.NewOption(messages.ChooseModeUpdate, messages.ChooseModeUpdate),
				huh.NewOption(messages.ChooseModeWipe, messages.ChooseModeWipe),
			).
			Value(&choice),
	))
	if err := runForm(form); err != nil {
		return mode.Update, err
	}
	if choice == messages.ChooseModeWipe {
		return mode.Wipe, nil
	}
	return mode.Update, nil
}

// SelectDevice renders a picker over the detected block devices and
// returns the chosen device path.
func (UI) SelectDevice(devices []blockdev.Info) (string, error) {
	if len(devices) == 0 {
		return "", errors.New(messages.ListDevicesNone)
	}

	opts := make([]huh.Option[string], len(devices))
	for i, d := range devices {
		label := fmt.Sprintf("%-14s %8s  %s", d.Path, d.Size, d.Model)
		if d.Transport == "usb" {
			label += " [USB]"
		}
		opts[i] = huh.NewOption(label, d.Path)
	}

	var chosen string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(messages.SelectDevicePrompt).
			Options(opts...).
			Value(&chosen),
	))
	if err := runForm(form); err != nil {
		return "", err
	}
	return chosen, nil
}

// runForm executes the form, mapping a user abort onto mode.ErrAborted so
// every caller unwinds the same way.
func runForm(form *huh.Form) error {
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return mode.ErrAborted
	}
	return err
}

// Package assist provisions the wimboot helper binary that GRUB needs to
// chainload Windows-style images. The helper is optional: without it the
// affected menu entries still render, they just will not boot, so nothing
// in this package is ever a fatal error.
package assist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"multistick/internal/messages"
)

// HelperRelPath is where the helper lives relative to the boot partition
// root. The generated menu references it by this path.
const HelperRelPath = "grub/wimboot"

// DefaultFetchURL is the upstream release artifact for the helper.
const DefaultFetchURL = "https://github.com/ipxe/wimboot/releases/latest/download/wimboot"

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Options configure helper provisioning for one run.
type Options struct {
	// AllowFetch permits downloading the helper when it is missing.
	AllowFetch bool
	// FetchURL overrides DefaultFetchURL.
	FetchURL string
	// DryRun reports the fetch without performing it.
	DryRun bool
	// Out receives progress output.
	Out io.Writer
}

var (
	statFunc      = os.Stat
	writeFileFunc = os.WriteFile
)

// Ensure makes a best effort to place the helper on the boot partition
// mounted at bootMount. It returns user-facing warnings; it never fails
// the run.
func Ensure(ctx context.Context, bootMount string, opts Options) []string {
	helperPath := filepath.Join(bootMount, filepath.FromSlash(HelperRelPath))
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	if _, err := statFunc(helperPath); err == nil {
		_, _ = fmt.Fprintf(out, messages.AssistPresentFmt, helperPath)
		return nil
	}

	if !opts.AllowFetch {
		return []string{fmt.Sprintf(messages.AssistFetchDeniedFmt, helperPath)}
	}

	url := opts.FetchURL
	if url == "" {
		url = DefaultFetchURL
	}
	_, _ = fmt.Fprintf(out, messages.AssistFetchingFmt, url)
	if opts.DryRun {
		_, _ = fmt.Fprintln(out, messages.AssistFetchSkippedDry)
		return nil
	}

	if err := fetch(ctx, url, helperPath); err != nil {
		return []string{fmt.Sprintf(messages.AssistFetchFailedFmt, err)}
	}
	return nil
}

// fetch downloads url into helperPath.
func fetch(ctx context.Context, url, helperPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.AssistCreateReqFmt, err)
	}
	req.Header.Set("User-Agent", "multistick")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.AssistBadStatusFmt, resp.Status, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf(messages.AssistChecksumZero)
	}
	if err := writeFileFunc(helperPath, data, 0o644); err != nil {
		return fmt.Errorf(messages.AssistWriteHelperFmt, helperPath, err)
	}
	return nil
}

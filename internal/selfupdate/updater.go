package selfupdate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxDownload bounds a release asset read into memory.
const maxDownload = 256 << 20

type UpdateInput struct {
	CurrentVersion string

	// TargetVersion pins a release. Empty means the latest release.
	TargetVersion string

	// AllowMajor permits crossing a major version.
	AllowMajor bool

	// Guard, when set, refuses the update while an interview is open.
	Guard *Guard
}

type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for this platform, verifies it
// against the release checksums and swaps it in for the running binary.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if canonical(input.CurrentVersion) == "" {
		return ErrDevBuild
	}
	if err := input.Guard.Check(ctx); err != nil {
		return err
	}

	version := input.TargetVersion
	if version == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		version = result.LatestVersion
	}

	p, err := plan(input.CurrentVersion, version, input.TargetVersion != "", input.AllowMajor)
	if err != nil {
		return err
	}

	asset, err := assetName(p.To)
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%s/%s/%s/releases/download/%s", strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, p.To)

	msg := fmt.Sprintf("Downloading %s...", p.To)
	if p.Downgrade {
		msg = fmt.Sprintf("Downloading %s (older than %s)...", p.To, p.From)
	}
	progress(UpdateProgress{Stage: "download", Message: msg})
	archive, err := c.fetch(ctx, base+"/"+asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetch(ctx, base+"/"+checksumsName(p.To))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	if err := parseChecksums(sums).verify(asset, archive); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := unpack(asset, archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := install(binary, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", p.To)})
	return nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("%s is larger than %d MiB", url, maxDownload>>20)
	}
	return data, nil
}


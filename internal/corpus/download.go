package corpus

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultIndexURL is the base URL of the NLTK corpora packages.
const DefaultIndexURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages/corpora"

// EnsureOptions controls package download.
type EnsureOptions struct {
	IndexURL string
	Offline  bool
	Client   *http.Client
	// Notify is called before each package is checked and again after a
	// download finishes.
	Notify func(PackageStatus)
}

// PackageStatus describes one package after Ensure. Corrupt marks a cached
// archive that failed verification and was downloaded again.
type PackageStatus struct {
	Name       string
	Path       string
	Cached     bool
	Downloaded bool
	Corrupt    bool
	Bytes      int64
}

// Ensure makes sure every named package exists under dir, downloading the
// missing ones unless opts.Offline is set.
func Ensure(ctx context.Context, dir string, names []string, opts EnsureOptions) ([]PackageStatus, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: corpus directory is required", ErrCorpusUnavailable)
	}
	if err := os.MkdirAll(filepath.Join(dir, "corpora"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create corpus dir: %w", err)
	}
	indexURL := strings.TrimRight(opts.IndexURL, "/")
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	statuses := make([]PackageStatus, 0, len(names))
	for _, name := range names {
		status := PackageStatus{Name: name, Path: PackagePath(dir, name)}
		if info, err := os.Stat(status.Path); err == nil {
			verr := verifyArchive(status.Path)
			if verr == nil {
				status.Cached = true
				status.Bytes = info.Size()
				notify(opts, status)
				statuses = append(statuses, status)
				continue
			}
			if opts.Offline {
				return statuses, fmt.Errorf("%w: cached package %s is corrupt and downloads are disabled: %v", ErrCorpusUnavailable, name, verr)
			}
			status.Corrupt = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return statuses, fmt.Errorf("failed to stat package %s: %w", name, err)
		}

		notify(opts, status)
		if opts.Offline {
			return statuses, fmt.Errorf("%w: package %s is missing and downloads are disabled", ErrCorpusUnavailable, name)
		}
		n, err := download(ctx, client, indexURL+"/"+name+".zip", status.Path)
		if err != nil {
			return statuses, fmt.Errorf("%w: failed to download package %s: %v", ErrCorpusUnavailable, name, err)
		}
		status.Downloaded = true
		status.Bytes = n
		notify(opts, status)
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func notify(opts EnsureOptions, status PackageStatus) {
	if opts.Notify != nil {
		opts.Notify(status)
	}
}

func download(ctx context.Context, client *http.Client, url, destPath string) (int64, error) {
	resp, err := httpRequest(ctx, client, url)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "package-*.zip")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp package: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to download package: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp package: %w", err)
	}
	if err := verifyArchive(tmpPath); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("failed to move package into place: %w", err)
	}
	return n, nil
}

func verifyArchive(path string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%s is not a zip archive: %w", filepath.Base(path), err)
	}
	return reader.Close()
}

func httpRequest(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

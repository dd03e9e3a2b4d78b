package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/verte-zerg/wordcsv/internal/corpus/corpustest"
)

func TestEnsureDownloadsMissingPackages(t *testing.T) {
	src := t.TempDir()
	corpustest.Write(t, src)

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		name := strings.TrimSuffix(filepath.Base(r.URL.Path), ".zip")
		data, err := os.ReadFile(PackagePath(src, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer server.Close()

	dir := t.TempDir()
	names := RequiredPackages(StopwordsNLTK)
	statuses, err := Ensure(context.Background(), dir, names, EnsureOptions{IndexURL: server.URL})
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if len(statuses) != len(names) {
		t.Fatalf("expected %d statuses, got %d", len(names), len(statuses))
	}
	for _, st := range statuses {
		if !st.Downloaded || st.Cached {
			t.Fatalf("expected %s to be downloaded: %+v", st.Name, st)
		}
	}
	if _, err := Open(dir, Options{}); err != nil {
		t.Fatalf("Open after download failed: %v", err)
	}

	statuses, err = Ensure(context.Background(), dir, names, EnsureOptions{IndexURL: server.URL})
	if err != nil {
		t.Fatalf("second Ensure failed: %v", err)
	}
	for _, st := range statuses {
		if !st.Cached {
			t.Fatalf("expected %s to be cached: %+v", st.Name, st)
		}
	}
	if got := requests.Load(); got != int32(len(names)) {
		t.Fatalf("expected %d requests, got %d", len(names), got)
	}
}

func TestEnsureRejectsNonZipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not a zip</html>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	_, err := Ensure(context.Background(), dir, []string{PackageWords}, EnsureOptions{IndexURL: server.URL})
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
	if _, err := os.Stat(PackagePath(dir, PackageWords)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no package file after failed download, got %v", err)
	}
}

func TestEnsureHTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Ensure(context.Background(), t.TempDir(), []string{PackageWords}, EnsureOptions{IndexURL: server.URL})
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
}

func TestEnsureOffline(t *testing.T) {
	var notified []PackageStatus
	_, err := Ensure(context.Background(), t.TempDir(), []string{PackageWords}, EnsureOptions{
		Offline: true,
		Notify:  func(st PackageStatus) { notified = append(notified, st) },
	})
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
	if len(notified) != 1 || notified[0].Cached {
		t.Fatalf("expected one missing-package notification, got %+v", notified)
	}
}

func TestEnsureReplacesCorruptCache(t *testing.T) {
	src := t.TempDir()
	corpustest.Write(t, src)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(filepath.Base(r.URL.Path), ".zip")
		data, err := os.ReadFile(PackagePath(src, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer server.Close()

	dir := t.TempDir()
	corpustest.Write(t, dir)
	if err := os.WriteFile(PackagePath(dir, PackageWords), []byte("truncated"), 0o644); err != nil {
		t.Fatalf("write corrupt package: %v", err)
	}

	statuses, err := Ensure(context.Background(), dir, RequiredPackages(StopwordsNLTK), EnsureOptions{IndexURL: server.URL})
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	for _, st := range statuses {
		if st.Name == PackageWords {
			if !st.Corrupt || !st.Downloaded || st.Cached {
				t.Fatalf("expected corrupt words package to be downloaded again: %+v", st)
			}
			continue
		}
		if !st.Cached || st.Corrupt {
			t.Fatalf("expected %s to stay cached: %+v", st.Name, st)
		}
	}
	if _, err := Open(dir, Options{}); err != nil {
		t.Fatalf("Open after replacing corrupt package failed: %v", err)
	}
}

func TestEnsureOfflineCorruptCache(t *testing.T) {
	dir := t.TempDir()
	corpustest.Write(t, dir)
	if err := os.WriteFile(PackagePath(dir, PackageWordNet), []byte("truncated"), 0o644); err != nil {
		t.Fatalf("write corrupt package: %v", err)
	}
	_, err := Ensure(context.Background(), dir, RequiredPackages(StopwordsNLTK), EnsureOptions{Offline: true})
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "corrupt") {
		t.Fatalf("expected corrupt package error, got %v", err)
	}
}

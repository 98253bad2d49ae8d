package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Team997Coders/frcInstallTool/internal/config"
	"github.com/Team997Coders/frcInstallTool/internal/installer"
)

func TestRunAcquireDownloadsManifestFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("vendor library"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "tools.csv")
	rows := "Vendor Lib,vendor.json," + srv.URL + "/vendor.json,0,unzipped,vendordeps\n" +
		"#Old,old.json," + srv.URL + "/old.json,0,unzipped,.\n"
	if err := os.WriteFile(manifestPath, []byte(rows), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	dest := filepath.Join(dir, "out")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := runAcquire(context.Background(), manifestPath, dest, &flags{verbose: true, hashOut: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dest, "vendordeps", "vendor.json"))
	if err != nil || string(got) != "vendor library" {
		t.Fatalf("downloaded file mismatch: %q, %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(dest, "old.json")); !os.IsNotExist(err) {
		t.Fatalf("disabled row should not be downloaded")
	}
}

func TestRunAcquireErrors(t *testing.T) {
	dir := t.TempDir()
	if err := runAcquire(context.Background(), filepath.Join(dir, "missing.csv"), dir, &flags{}); err == nil {
		t.Fatalf("expected error for missing manifest")
	}

	manifestPath := filepath.Join(dir, "tools.csv")
	if err := os.WriteFile(manifestPath, []byte("Pkg,,somepkg,0,pip,.\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := runAcquire(context.Background(), manifestPath, dir, &flags{configPath: filepath.Join(dir, "tool.ini")}); err == nil {
		t.Fatalf("expected error for missing config")
	}
}

func TestNewDispatcherAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ArchiveFailure = config.ArchiveFailureFatal
	cfg.Git = "/opt/git/bin/git"

	d := newDispatcher(cfg, "/out", &flags{verbose: true})
	if !d.Options.ArchiveFailureFatal || !d.Options.Verbose || d.Options.Destination != "/out" {
		t.Fatalf("options mismatch: %+v", d.Options)
	}
	tools, ok := d.Tools.(*installer.Tools)
	if !ok || tools.Git != "/opt/git/bin/git" {
		t.Fatalf("tools mismatch: %+v", d.Tools)
	}
	fetcher, ok := d.Fetcher.(*installer.HTTPFetcher)
	if !ok || fetcher.UserAgent != config.DefaultUserAgent {
		t.Fatalf("fetcher mismatch: %+v", d.Fetcher)
	}
}

func TestRootFlags(t *testing.T) {
	for name, short := range map[string]string{"verbose": "v", "hash-out": "o", "config": "c"} {
		f := rootCmd.Flags().Lookup(name)
		if f == nil || f.Shorthand != short {
			t.Fatalf("flag --%s should have shorthand -%s", name, short)
		}
	}
	if err := rootCmd.Args(rootCmd, []string{"only-one"}); err == nil {
		t.Fatalf("root command should require two arguments")
	}
}

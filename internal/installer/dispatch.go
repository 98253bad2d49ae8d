package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Team997Coders/frcInstallTool/internal/logger"
	"github.com/Team997Coders/frcInstallTool/internal/manifest"
)

// ErrUnknownKind is returned for a work item whose kind has no acquisition strategy.
var ErrUnknownKind = errors.New("unknown work item kind")

// RunState accumulates the outcome of one run.
// - Valid / Invalid: file items whose checksum (and extraction) passed or failed.
// - PendingSetup: installer items that still need manual setup, in manifest order.
// - Failed: git and pip items whose tool invocation did not succeed.
type RunState struct {
	Valid        int
	Invalid      int
	PendingSetup []string
	Failed       []string
}

// Options are the per-run switches of a Dispatcher.
// - Destination: root directory for file artifacts.
// - Verbose: print the source locator next to each item.
// - HashOut: print computed and expected digests for every file item.
// - ArchiveFailureFatal: abort the run on a corrupt archive instead of counting it invalid.
type Options struct {
	Destination         string
	Verbose             bool
	HashOut             bool
	ArchiveFailureFatal bool
}

// ItemSource yields work items until it returns io.EOF. *manifest.Reader satisfies it.
type ItemSource interface {
	Next() (manifest.WorkItem, error)
}

// Dispatcher routes each work item to its acquisition strategy.
type Dispatcher struct {
	Fetcher   Fetcher
	Extractor Extractor
	Tools     ToolInvoker
	Options   Options
}

// Run processes items one at a time, in order, until the source is exhausted.
// Manifest, fetch and (optionally) archive errors end the run; the state
// gathered so far is returned alongside the error.
func (d *Dispatcher) Run(ctx context.Context, items ItemSource) (*RunState, error) {
	state := &RunState{}
	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		item, err := items.Next()
		if errors.Is(err, io.EOF) {
			return state, nil
		}
		if err != nil {
			return state, err
		}
		if err := d.Dispatch(ctx, item, state); err != nil {
			return state, err
		}
	}
}

// Dispatch acquires a single item and records the result in state.
func (d *Dispatcher) Dispatch(ctx context.Context, item manifest.WorkItem, state *RunState) error {
	if item.Disabled() {
		logger.Debug("[DEBUG] Skipping disabled entry %s\n", item.FriendlyName)
		return nil
	}

	switch item.Kind {
	case manifest.KindUnzipped, manifest.KindZipped, manifest.KindUnzippedInstaller, manifest.KindZippedInstaller:
		return d.acquireFile(ctx, item, state)
	case manifest.KindGit:
		d.acquireRepository(ctx, item, state)
		return nil
	case manifest.KindPip:
		d.acquirePackage(ctx, item, state)
		return nil
	default:
		return fmt.Errorf("%s (line %d): %w: %v", item.FriendlyName, item.Line, ErrUnknownKind, item.Kind)
	}
}

// itemDir is the directory file artifacts of item are written to.
func (d *Dispatcher) itemDir(item manifest.WorkItem) string {
	if item.HasSubfolder() {
		return filepath.Join(d.Options.Destination, item.Subfolder)
	}
	return d.Options.Destination
}

// announce prints the "Downloading ..." line for item, with its source when verbose.
func (d *Dispatcher) announce(what string, item manifest.WorkItem) {
	if d.Options.Verbose {
		logger.Info("[INFO] Downloading %s %s from %s...\n", what, item.FriendlyName, item.Target)
	} else {
		logger.Info("[INFO] Downloading %s %s...\n", what, item.FriendlyName)
	}
}

// acquireFile downloads a file item, checks its digest, extracts zipped kinds
// and counts the item valid or invalid. Only directory, download and (when
// configured) archive failures are returned.
func (d *Dispatcher) acquireFile(ctx context.Context, item manifest.WorkItem, state *RunState) error {
	// Create the target directory (destination root or subfolder) if missing
	dir := d.itemDir(item)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%s: failed to create %s: %w", item.FriendlyName, dir, err)
	}
	path := filepath.Join(dir, item.ArtifactName)

	d.announce("file", item)
	if _, err := d.Fetcher.Fetch(ctx, item.Target, path); err != nil {
		return fmt.Errorf("%s: %w", item.FriendlyName, err)
	}

	// Hash once: the digest is needed for --hash-out as well as the comparison
	digest, err := DigestOf(path)
	if err != nil {
		return fmt.Errorf("%s: %w", item.FriendlyName, err)
	}
	if d.Options.HashOut {
		logger.Info("[INFO] MD5 Hash for %s: %s\n", item.FriendlyName, digest)
		logger.Info("[INFO] Expected: %s\n", item.ExpectedDigest)
	}

	ok := MatchesDigest(digest, item.ExpectedDigest)
	if !ok {
		logger.Warn("[WARN] %s does not match checksum!\n", item.FriendlyName)
	}

	// A corrupt archive downgrades the item to invalid unless configured as fatal
	if item.Kind.IsZipped() {
		target, err := d.Extractor.Extract(path)
		switch {
		case err != nil && d.Options.ArchiveFailureFatal:
			return fmt.Errorf("%s: %w", item.FriendlyName, err)
		case err != nil:
			logger.Warn("[WARN] Could not extract %s: %v\n", item.FriendlyName, err)
			ok = false
		default:
			logger.Debug("[DEBUG] Extracted %s to %s\n", path, target)
		}
	}

	if ok {
		state.Valid++
	} else {
		state.Invalid++
	}

	if item.Kind.IsInstaller() {
		state.PendingSetup = append(state.PendingSetup, item.FriendlyName)
	}
	return nil
}

// acquireRepository mirror-clones a git item. Failures are reported, never returned.
func (d *Dispatcher) acquireRepository(ctx context.Context, item manifest.WorkItem, state *RunState) {
	d.announce("git repository", item)

	// Without a subfolder git clones into the working directory under the
	// repository's own name, not under Destination.
	dir := ""
	if item.HasSubfolder() {
		dir = filepath.Join(d.itemDir(item), item.FriendlyName)
	}

	switch outcome := d.Tools.MirrorClone(ctx, item.Target, dir); outcome {
	case Succeeded:
		logger.Debug("[DEBUG] Cloned %s\n", item.Target)
	case Cancelled:
		// Run reports the interruption; the item is neither failed nor done.
		logger.Debug("[DEBUG] Clone of %s interrupted\n", item.Target)
	default:
		if outcome == ToolMissing {
			logger.Warn("[WARN] Could not find git! Is it on your PATH?\n")
		}
		logger.Warn("[WARN] Could not clone git repository %s!\n", item.FriendlyName)
		state.Failed = append(state.Failed, item.FriendlyName)
	}
}

// acquirePackage installs a pip item. Failures are reported, never returned.
func (d *Dispatcher) acquirePackage(ctx context.Context, item manifest.WorkItem, state *RunState) {
	d.announce("pip package", item)

	switch outcome := d.Tools.InstallPackage(ctx, item.Target); outcome {
	case Succeeded:
		logger.Debug("[DEBUG] Installed %s\n", item.Target)
	case Cancelled:
		logger.Debug("[DEBUG] Install of %s interrupted\n", item.Target)
	default:
		if outcome == ToolMissing {
			logger.Warn("[WARN] Could not find pip! Is it on your PATH?\n")
		}
		logger.Warn("[WARN] Could not download pip package %s!\n", item.FriendlyName)
		state.Failed = append(state.Failed, item.FriendlyName)
	}
}

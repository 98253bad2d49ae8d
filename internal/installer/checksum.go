package installer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Team997Coders/frcInstallTool/internal/manifest"
)

// digestChunkSize is the read size used while hashing.
const digestChunkSize = 1 << 20

// DigestOf returns the lowercase hex MD5 of the file at path. MD5 only guards
// against truncated or corrupted downloads; it is not a security check.
func DigestOf(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, digestChunkSize)); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MatchesDigest reports whether actual satisfies expected. The sentinel
// manifest.NoVerification matches anything.
func MatchesDigest(actual, expected string) bool {
	if expected == manifest.NoVerification {
		return true
	}
	return actual == strings.ToLower(expected)
}

// Verify checks the file at path against expected. The sentinel
// manifest.NoVerification passes without reading the file. Dispatcher does not
// call it: it hashes once with DigestOf so the digest can also be printed for
// --hash-out, then compares with MatchesDigest.
func Verify(path, expected string) (bool, error) {
	if expected == manifest.NoVerification {
		return true, nil
	}
	digest, err := DigestOf(path)
	if err != nil {
		return false, err
	}
	return MatchesDigest(digest, expected), nil
}

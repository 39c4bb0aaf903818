package gateways

import (
	"context"
	"crypto/md5" //nolint:gosec // G501: MD5 retained because update bundles ship MD5 sums
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Supported checksum algorithms.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
)

// checksumVerifier implements checksum verification using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a file's checksum against an expected hex digest.
// Pure Go implementation - no external md5sum/sha256sum binary needed
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum, algorithm string) error {
	actualSum, err := v.CalculateChecksum(filePath, algorithm)
	if err != nil {
		return err
	}

	if actualSum != expectedSum {
		return fmt.Errorf("%s checksum mismatch: expected %s, got %s", algorithm, expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum calculates the hex digest of a file with the given
// algorithm (md5 or sha256).
func (v *checksumVerifier) CalculateChecksum(filePath, algorithm string) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case AlgorithmMD5:
		//nolint:gosec // G401: MD5 is the digest the gateway update server publishes
		return md5.New(), nil
	case AlgorithmSHA256, "":
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

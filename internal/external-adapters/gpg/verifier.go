// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier implements GPG signature verification using ProtonMail's go-crypto
// A maintained, modern fork of golang.org/x/crypto/openpgp
// This is in external-adapters to isolate the external dependency
//
// Keys are loaded from local keyring files: CI verification runs offline, so
// there is no keyserver round-trip.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a new GPG verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyringFile loads public keys from an armored or binary keyring file
func (v *Verifier) ImportKeyringFile(path string) error {
	//nolint:gosec // G304: keyring path comes from the verify command flags
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open keyring %s: %w", path, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Retry as a binary keyring
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to rewind keyring file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to parse keyring %s: %w", path, err)
		}
	}
	if len(entities) == 0 {
		return fmt.Errorf("no keys found in %s", path)
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// KeyCount returns the number of imported keys
func (v *Verifier) KeyCount() int {
	return len(v.keyring)
}

// VerifyDetachedSignature verifies a detached signature over a bundle file
// against the imported keyring
func (v *Verifier) VerifyDetachedSignature(bundlePath, signaturePath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no keys imported")
	}

	//nolint:gosec // G304: bundle path comes from the verify command flags
	sig, err := os.Open(signaturePath)
	if err != nil {
		return fmt.Errorf("failed to open signature %s: %w", signaturePath, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer sig.Close()

	openBundle := func() (*os.File, error) {
		//nolint:gosec // G304: bundle path comes from the verify command flags
		return os.Open(bundlePath)
	}

	bundle, err := openBundle()
	if err != nil {
		return fmt.Errorf("failed to open bundle %s: %w", bundlePath, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer bundle.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bundle, sig, nil); err == nil {
		return nil
	}

	// Retry with a binary signature
	if _, err := sig.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind signature file: %w", err)
	}
	bundle2, err := openBundle()
	if err != nil {
		return fmt.Errorf("failed to reopen bundle %s: %w", bundlePath, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer bundle2.Close()

	if _, err := openpgp.CheckDetachedSignature(v.keyring, bundle2, sig, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// Package vault seals and opens secrets embedded in the manifest.
// Vaulted values carry the form "vault:<base64 ciphertext>" and are
// encrypted to an age X25519 identity kept outside the repository.
package vault

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
)

// Prefix marks an encrypted manifest value.
const Prefix = "vault:"

// IsVaulted reports whether the value is an encrypted vault string.
func IsVaulted(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// DefaultKeyPath returns the standard identity file location.
func DefaultKeyPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".puppet", "key.txt")
}

// Keygen writes a fresh X25519 identity to path and returns its public
// recipient string. Fails if an identity already exists there.
func Keygen(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("identity file already exists: %s", path)
	}

	id, err := age.GenerateX25519Identity()
	if err != nil {
		return "", fmt.Errorf("failed to generate identity: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write identity file: %w", err)
	}
	return id.Recipient().String(), nil
}

// Encrypt seals a secret for the identity at keyPath and returns the
// vault:... form ready for the manifest.
func Encrypt(secret, keyPath string) (string, error) {
	ids, err := loadIdentities(keyPath)
	if err != nil {
		return "", err
	}

	var recipients []age.Recipient
	for _, id := range ids {
		x, ok := id.(*age.X25519Identity)
		if !ok {
			continue
		}
		recipients = append(recipients, x.Recipient())
	}
	if len(recipients) == 0 {
		return "", fmt.Errorf("no usable identity in %s", keyPath)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipients...)
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}
	if _, err := io.WriteString(w, secret); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return Prefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decrypt opens a vault:... value with the identity at keyPath.
func Decrypt(value, keyPath string) (string, error) {
	if !IsVaulted(value) {
		return "", fmt.Errorf("value is not vaulted")
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil {
		return "", fmt.Errorf("malformed vault value: %w", err)
	}

	ids, err := loadIdentities(keyPath)
	if err != nil {
		return "", err
	}

	r, err := age.Decrypt(bytes.NewReader(raw), ids...)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func loadIdentities(keyPath string) ([]age.Identity, error) {
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity file: %w", err)
	}
	defer f.Close()

	ids, err := age.ParseIdentities(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity file: %w", err)
	}
	return ids, nil
}

// Package auth resolves warehouse credentials before any network activity.
//
// Two modes are supported, tried in order: an RSA private key loaded from a
// PEM file (developer machines), then a plaintext password (CI and scheduled
// environments). The chosen mode is returned as a tagged Credential value so
// the connection-opening code never inspects the environment itself.
package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrNoCredentials is returned when neither credential mode is configured.
var ErrNoCredentials = errors.New(
	"no warehouse credentials configured: set SNOWFLAKE_PRIVATE_KEY_PATH or SNOWFLAKE_PASSWORD")

// Credential is one resolved authentication mode.
type Credential interface {
	// Method names the mode for logging ("key-pair" or "password").
	Method() string
}

// KeyPairCredential authenticates with an RSA private key.
type KeyPairCredential struct {
	Key *rsa.PrivateKey
}

func (KeyPairCredential) Method() string { return "key-pair" }

// PasswordCredential authenticates with a plaintext secret.
type PasswordCredential struct {
	Password string
}

func (PasswordCredential) Method() string { return "password" }

// Resolve selects exactly one credential mode. A configured key path whose
// file exists wins; a file that exists but fails to parse is an error, not a
// fallthrough to the password.
func Resolve(keyPath, password string) (Credential, error) {
	if keyPath != "" {
		if _, err := os.Stat(keyPath); err == nil {
			key, err := LoadPrivateKey(keyPath)
			if err != nil {
				return nil, fmt.Errorf("load private key: %w", err)
			}
			return KeyPairCredential{Key: key}, nil
		}
	}

	if password != "" {
		return PasswordCredential{Password: password}, nil
	}

	return nil, ErrNoCredentials
}

// LoadPrivateKey loads an unencrypted RSA private key from a PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	// Try PKCS#8 first (newer format)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	// Fall back to PKCS#1 (older format)
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return rsaKey, nil
}

// PKCS8DER re-encodes a key as unencrypted PKCS#8 DER, the normalized form
// warehouse drivers expect regardless of how the PEM file was encoded.
func PKCS8DER(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("marshal pkcs8: %w", err)
	}
	return der, nil
}

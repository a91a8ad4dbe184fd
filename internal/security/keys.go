package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"strings"
)

var (
	// ErrInvalidKey is returned for missing key material, a bad PEM block, or a key the
	// token provider cannot sign with (anything but RSA or ECDSA P-256).
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyMismatch is returned when JWT_PUBLIC_KEY does not belong to JWT_PRIVATE_KEY.
	ErrKeyMismatch = errors.New("public key does not match private key")
)

// LoadPEM resolves a JWT_*_KEY setting. Values starting with "-----BEGIN" are inline PEM,
// where escaped "\n" from a one-line env var become real newlines; anything else is a file path.
func LoadPEM(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, ErrInvalidKey
	case strings.HasPrefix(s, "-----BEGIN"):
		return []byte(strings.ReplaceAll(s, `\n`, "\n")), nil
	default:
		return os.ReadFile(s)
	}
}

func decodeBlock(s string) (*pem.Block, error) {
	raw, err := LoadPEM(s)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, ErrInvalidKey
	}
	return block, nil
}

// ParsePrivateKey returns the token signing key from a JWT_PRIVATE_KEY setting.
func ParsePrivateKey(s string) (crypto.Signer, error) {
	block, err := decodeBlock(s)
	if err != nil {
		return nil, err
	}
	var key any
	switch block.Type {
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}
	signer, ok := key.(crypto.Signer)
	if !ok || KeyAlg(signer.Public()) == "" {
		return nil, ErrInvalidKey
	}
	return signer, nil
}

// ParsePublicKey returns the token verification key from a JWT_PUBLIC_KEY setting.
func ParsePublicKey(s string) (crypto.PublicKey, error) {
	block, err := decodeBlock(s)
	if err != nil {
		return nil, err
	}
	var pub crypto.PublicKey
	switch block.Type {
	case "PUBLIC KEY":
		pub, err = x509.ParsePKIXPublicKey(block.Bytes)
	case "RSA PUBLIC KEY":
		pub, err = x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		return nil, ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}
	if KeyAlg(pub) == "" {
		return nil, ErrInvalidKey
	}
	return pub, nil
}

// LoadKeyPair builds the portal's signing pair from JWT_PRIVATE_KEY and JWT_PUBLIC_KEY.
// With neither set it falls back to an ephemeral ES256 key and reports ephemeral=true;
// sessions then end with the process. The public key may be omitted and is derived
// from the private one; a public key alone is an error.
func LoadKeyPair(privatePEM, publicPEM string) (signer crypto.Signer, pub crypto.PublicKey, ephemeral bool, err error) {
	havePriv := strings.TrimSpace(privatePEM) != ""
	havePub := strings.TrimSpace(publicPEM) != ""
	if !havePriv {
		if havePub {
			return nil, nil, false, ErrInvalidKey
		}
		key, err := GenerateEphemeralKey()
		if err != nil {
			return nil, nil, false, err
		}
		return key, key.Public(), true, nil
	}
	if signer, err = ParsePrivateKey(privatePEM); err != nil {
		return nil, nil, false, err
	}
	if !havePub {
		return signer, signer.Public(), false, nil
	}
	if pub, err = ParsePublicKey(publicPEM); err != nil {
		return nil, nil, false, err
	}
	if eq, ok := pub.(interface{ Equal(crypto.PublicKey) bool }); !ok || !eq.Equal(signer.Public()) {
		return nil, nil, false, ErrKeyMismatch
	}
	return signer, pub, false, nil
}

// GenerateEphemeralKey returns a fresh P-256 key for ES256 tokens.
func GenerateEphemeralKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// KeyAlg names the JWS algorithm for pub: RS256 for RSA, ES256 for P-256, empty otherwise.
func KeyAlg(pub crypto.PublicKey) string {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return "RS256"
	case *ecdsa.PublicKey:
		if k.Curve == elliptic.P256() {
			return "ES256"
		}
	}
	return ""
}

package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
)

// signingKeyID is the fixed key identifier published in the JWKS and stamped
// into every token header.
const signingKeyID = "rsa-public-key"

// Provider holds the process-wide RSA signing key pair. It is loaded once at
// startup and immutable for the process lifetime; only the public half is
// ever exposed, packaged as a JSON Web Key Set.
type Provider struct {
	private *rsa.PrivateKey
}

// jwk is the public-key JSON Web Key shape per RFC 7517.
type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// NewProvider loads the RSA private key from the given PEM file, or generates
// a fresh 2048-bit key when the path is empty.
func NewProvider(pemPath string) (*Provider, error) {
	if pemPath == "" {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
		}
		return &Provider{private: key}, nil
	}

	raw, err := os.ReadFile(pemPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read RSA private key file %s: %w", pemPath, err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", pemPath)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#1 private key: %w", err)
		}
		return &Provider{private: key}, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#8 private key: %w", err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key in %s is not RSA", pemPath)
		}
		return &Provider{private: key}, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q in %s", block.Type, pemPath)
	}
}

// Private returns the signing key.
func (p *Provider) Private() *rsa.PrivateKey {
	return p.private
}

// Public returns the verification key.
func (p *Provider) Public() *rsa.PublicKey {
	return &p.private.PublicKey
}

// KeyID returns the identifier under which the public key is published.
func (p *Provider) KeyID() string {
	return signingKeyID
}

// JWKS renders the public half of the key pair as a JSON Web Key Set
// document suitable for serving at /.well-known/jwks.json.
func (p *Provider) JWKS() ([]byte, error) {
	pub := p.Public()

	// Exponent as a big-endian byte string with leading zeros stripped.
	eBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(eBytes, uint64(pub.E))
	i := 0
	for i < len(eBytes)-1 && eBytes[i] == 0 {
		i++
	}
	eBytes = eBytes[i:]

	set := jwkSet{
		Keys: []jwk{{
			Kty: "RSA",
			Use: "sig",
			Alg: "RS256",
			Kid: signingKeyID,
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(eBytes),
		}},
	}

	doc, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JWKS: %w", err)
	}
	return doc, nil
}

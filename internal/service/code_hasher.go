package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	codeHashThreads = 1
	codeHashKeyLen  = 32
	codeHashSaltLen = 16
)

// Argon2CodeHasher implements ports.CodeHasher using Argon2id. Codes are short
// and short-lived, so memory and iterations are configurable and kept small.
type Argon2CodeHasher struct {
	memoryKiB  uint32
	iterations uint32
}

// NewArgon2CodeHasher creates a hasher with the given cost parameters.
func NewArgon2CodeHasher(memoryKiB, iterations uint32) *Argon2CodeHasher {
	if memoryKiB == 0 {
		memoryKiB = 19 * 1024
	}
	if iterations == 0 {
		iterations = 2
	}
	return &Argon2CodeHasher{memoryKiB: memoryKiB, iterations: iterations}
}

// Hash returns format: $argon2id$v=19$m=<kib>,t=<iter>,p=1$<salt>$<hash>
func (h *Argon2CodeHasher) Hash(code string) (string, error) {
	salt := make([]byte, codeHashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := argon2.IDKey([]byte(code), salt, h.iterations, h.memoryKiB, codeHashThreads, codeHashKeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKiB, h.iterations, codeHashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify checks code against an encoded hash using the parameters stored in it.
func (h *Argon2CodeHasher) Verify(code string, encoded string) (bool, error) {
	p, err := decodeArgon2(encoded)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(code), p.salt, p.time, p.memory, p.threads, uint32(len(p.hash)))

	return subtle.ConstantTimeCompare(p.hash, other) == 1, nil
}

type argon2Encoded struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

func decodeArgon2(encoded string) (*argon2Encoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid hash format: expected 6 parts, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("parsing version: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	p := &argon2Encoded{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, fmt.Errorf("parsing params: %w", err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("decoding salt: %w", err)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("decoding hash: %w", err)
	}
	return p, nil
}

// Package hasher implements the Hash Worker Pool: computing a
// content hash for every file in every surviving size group, using a
// configurable algorithm and a configurable degree of parallelism.
package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"hash/crc32"
	"hash/fnv"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/ivoronin/dupereconcile/internal/errs"
)

// Algorithm names the recognized hashing tags. Every
// implementation consumes the file's full byte content and emits a
// lowercase-hex string. Algorithm choice is part of the cache key.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA1    Algorithm = "sha1"
	SHA256  Algorithm = "sha256"
	Blake3  Algorithm = "blake3"
	XXHash  Algorithm = "xxhash"
	CRC32   Algorithm = "crc32"
	FNV1a   Algorithm = "fnv1a"
)

// Valid reports whether a is a recognized algorithm tag.
func Valid(a Algorithm) bool {
	switch a {
	case MD5, SHA1, SHA256, Blake3, XXHash, CRC32, FNV1a:
		return true
	default:
		return false
	}
}

func newHasher(a Algorithm) (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case Blake3:
		return blake3.New(), nil
	case XXHash:
		return xxhash.New(), nil
	case CRC32:
		return crc32.NewIEEE(), nil
	case FNV1a:
		return fnv.New64a(), nil
	default:
		return nil, errs.Newf(errs.InvalidConfig, "unknown algorithm %q", a)
	}
}

const blockSize = 64 * 1024

// HashFile computes the full-content hash of path under algorithm a,
// returning a lowercase-hex digest.
func HashFile(path string, a Algorithm) (string, error) {
	h, err := newHasher(a)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errs.New(errs.HashError, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, blockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errs.New(errs.HashError, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

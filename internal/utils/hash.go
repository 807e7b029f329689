// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 of a request body when a hash key
// is configured.
const HashHeader = "HashSHA256"

// hasherPool holds reusable HMAC-SHA256 instances keyed with the value given
// to InitHasherPool.
var hasherPool sync.Pool

// InitHasherPool (re)initializes the pool used by [Hash] with hashKey.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash returns the HMAC-SHA256 of data using a hasher from the pool.
// InitHasherPool must have been called first.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString returns the hex HMAC-SHA256 of data keyed with hashKey. It
// does not touch the pool.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// VerifyHash reports whether hexSum is the pooled HMAC-SHA256 of data. The
// comparison runs in constant time.
func VerifyHash(data []byte, hexSum string) bool {
	want, err := hex.DecodeString(hexSum)
	if err != nil {
		return false
	}
	return hmac.Equal(Hash(data), want)
}

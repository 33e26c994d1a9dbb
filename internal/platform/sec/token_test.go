// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package sec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies entropy length, URL-safety, and uniqueness of
generated tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is deterministic, hex-encoded, and never
exposes the plain token.
*/
func TestHashToken(t *testing.T) {
	hash := sec.HashToken("session-token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, sec.HashToken("session-token"))
	assert.NotEqual(t, hash, sec.HashToken("other-token"))
	assert.NotContains(t, hash, "session-token")

	// Known SHA-256 vector keeps the encoding honest.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		sec.HashToken(""),
	)
}

// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package sec_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/revio/internal/platform/sec"
)

/*
TestGenerateConfirmationCode verifies the code format: hex encoding of 16
random bytes, unique per call.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	first, err := sec.GenerateConfirmationCode()
	require.NoError(t, err)

	second, err := sec.GenerateConfirmationCode()
	require.NoError(t, err)

	assert.Len(t, first, sec.ConfirmationCodeBytes*2)
	assert.NotEqual(t, first, second)

	decoded, err := hex.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, sec.ConfirmationCodeBytes)
}

/*
TestCodeHash_RoundTrip verifies that a hashed code matches itself and nothing
else, and that hashing is salted (two hashes of the same code differ).
*/
func TestCodeHash_RoundTrip(t *testing.T) {
	code, err := sec.GenerateConfirmationCode()
	require.NoError(t, err)

	hash, err := sec.HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckCodeHash(code, hash))
	assert.False(t, sec.CheckCodeHash("wrong-code", hash))

	secondHash, err := sec.HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, hash, secondHash)
	assert.True(t, sec.CheckCodeHash(code, secondHash))
}

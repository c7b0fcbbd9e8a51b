// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeBytes is the entropy of a signup confirmation code.
// Hex encoding doubles it to 32 characters on the wire.
const ConfirmationCodeBytes = 16

// GenerateConfirmationCode returns a fresh random confirmation code as a
// lowercase hex string.
func GenerateConfirmationCode() (string, error) {
	raw := make([]byte, ConfirmationCodeBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashCode hashes a confirmation code for at-rest storage using bcrypt.
//
// Codes are compared through [CheckCodeHash], so from the caller's point of
// view the exchange still behaves as an exact string match.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its stored hash.
func CheckCodeHash(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAccessKey = errors.New("invalid access key")
	ErrInvalidExportKey = errors.New("invalid export key")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccessKey creates an HMAC-based access key for an assessment.
// It is deterministic, so nothing needs to be stored to validate it.
func GenerateAccessKey(assessmentID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(assessmentID))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// ValidateAccessKey checks the access key presented for an assessment
func ValidateAccessKey(assessmentID, accessKey, salt string) error {
	expected := GenerateAccessKey(assessmentID, salt)
	if !hmac.Equal([]byte(accessKey), []byte(expected)) {
		return ErrInvalidAccessKey
	}
	return nil
}

// ValidateExportKey compares a presented export key with the configured
// one in constant time. An empty configured key rejects everything.
func ValidateExportKey(presented, configured string) error {
	if configured == "" || !hmac.Equal([]byte(presented), []byte(configured)) {
		return ErrInvalidExportKey
	}
	return nil
}

// GenerateSecret creates a random URL-safe secret suitable for salts and
// export keys
func GenerateSecret() (string, error) {
	b := make([]byte, 24) // 192 bits
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashIP creates a one-way hash of an IP address so request logs do not
// carry raw client addresses
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

package service

import "strings"

// MinPasswordLength is the weakest password the vault accepts.
const MinPasswordLength = 8

// ValidatePassword reports whether password meets the vault's policy.
// The check gates new passwords only; recovery accepts whatever the key
// was sealed with.
func ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ValidateKeyFormat reports whether privateKey looks like a WIF-encoded
// wallet key. Those are base58 strings starting with '5' and at least
// 50 characters long.
func ValidateKeyFormat(privateKey string) bool {
	return strings.HasPrefix(privateKey, "5") && len(privateKey) >= 50
}

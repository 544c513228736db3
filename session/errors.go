package session

import "errors"

var (
	// ErrNoVault means unlock was attempted before any vault exists.
	ErrNoVault = errors.New("no vault exists")

	// ErrInvalidPassword covers every decryption failure during unlock.
	// Wrong password and tampered blob are deliberately the same error.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCode is returned while the second factor stays pending.
	ErrInvalidCode = errors.New("invalid verification code")
)

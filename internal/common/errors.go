// Package common defines shared sentinel errors, the Optional lookup result
// and small byte helpers used across DiaryKeeper layers. Callers should use
// errors.Is to match the error values.
package common

import "errors"

var (
	// Lookup / storage errors.
	ErrorNotFound           = errors.New("not found")
	ErrorConflict           = errors.New("conflict")
	ErrorStorage            = errors.New("storage error")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// Caller input errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors. ErrorUnauthorized deliberately covers both an unknown
	// username and a wrong password.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Encryption key for the user is not held by this process.
	ErrorLocked = errors.New("entry key locked")
)

package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotConnected = errors.New("store not connected")
)

// Record errors
var (
	ErrSettingsMissing  = errors.New("system settings not initialized")
	ErrUnsupportedStore = errors.New("unsupported store driver")
)

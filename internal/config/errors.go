package config

import "errors"

// Config-category errors (§7).
var (
	ErrFileNotFound      = errors.New("config: required file not found")
	ErrParseError        = errors.New("config: parse error")
	ErrValidationError   = errors.New("config: validation error")
	ErrAxisIDMismatch    = errors.New("config: axis filename index does not match axis.id")
	ErrDuplicateAxisID   = errors.New("config: duplicate axis id")
	ErrNoAxesDefined     = errors.New("config: no axes defined")
	ErrUnknownField      = errors.New("config: unknown field")
	ErrLegacyAxesArray   = errors.New("config: legacy [[axes]] array in machine.toml is rejected")
	ErrReloadScopeDenied = errors.New("config: reload changes a field outside the hot-reload scope")
)

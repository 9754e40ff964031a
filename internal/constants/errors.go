package constants

import "errors"

// CLI configuration errors.
var (
	ErrBucketNotConfigured = errors.New("no bucket configured, use 'cosmic config set bucket <slug>' or --bucket")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrEmptyWriteKey       = errors.New("write key must not be empty")
)

// CLI input errors.
var (
	ErrInvalidMetadataJSON = errors.New("metadata must be a JSON object")
	ErrInvalidFilterJSON   = errors.New("filter must be a JSON object")
	ErrDeleteNotConfirmed  = errors.New("deletion not confirmed, pass --force")
)

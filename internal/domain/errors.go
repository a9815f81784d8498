// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrValidation indicates the caller supplied invalid or missing input.
// No external resource was touched when this is returned.
var ErrValidation = errors.New("validation error")

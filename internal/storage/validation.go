package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrNilValue    = errors.New("record value cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKeyAccess checks the arguments shared by every record operation.
func validateKeyAccess(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return validateString(key, "key")
}

// validateWrite additionally rejects nil values; an empty slice is allowed.
func validateWrite(ctx context.Context, key string, value []byte) error {
	if err := validateKeyAccess(ctx, key); err != nil {
		return err
	}
	if value == nil {
		return ErrNilValue
	}
	return nil
}

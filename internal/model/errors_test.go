package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	for _, err := range []error{ErrMissingURL, ErrInvalidURL, ErrInvalidValidity, ErrCodeFormatInvalid} {
		assert.True(t, IsValidation(err), err.Error())
		assert.True(t, IsValidation(fmt.Errorf("包装: %w", err)), "包装后的错误也应识别")
	}

	for _, err := range []error{ErrCodeConflict, ErrGenerationExhausted, ErrNotFound, ErrGone, errors.New("db down")} {
		assert.False(t, IsValidation(err), err.Error())
	}
}

func TestShortURL_Clone(t *testing.T) {
	exp := mustTime("2026-01-01T00:30:00Z")
	orig := &ShortURL{
		ShortCode:    "abcde",
		ExpiresAt:    &exp,
		Clicks:       1,
		ClickHistory: []ClickEvent{{Source: "unknown"}},
	}

	c := orig.Clone()
	c.ClickHistory[0].Source = "changed"
	*c.ExpiresAt = exp.Add(1)

	assert.Equal(t, "unknown", orig.ClickHistory[0].Source)
	assert.Equal(t, exp, *orig.ExpiresAt)
}

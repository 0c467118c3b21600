package usecase_test

import (
	"errors"
	"testing"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	ctx := testContext()

	assert.True(t, usecase.Guard(ctx, "ok", func() error { return nil }))
	assert.False(t, usecase.Guard(ctx, "err", func() error { return errors.New("boom") }))
	assert.NotPanics(t, func() {
		assert.False(t, usecase.Guard(ctx, "panic", func() error { panic("boom") }))
	})
}

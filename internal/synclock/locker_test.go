package synclock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLocker(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, 1)
	assert.NoError(t, err)

	t.Run("same provider is held", func(t *testing.T) {
		_, err := l.Acquire(ctx, 1)
		assert.ErrorIs(t, err, ErrLocked)
	})

	t.Run("other providers are independent", func(t *testing.T) {
		release2, err := l.Acquire(ctx, 2)
		assert.NoError(t, err)
		release2()
	})

	t.Run("release frees the lock", func(t *testing.T) {
		release()
		release3, err := l.Acquire(ctx, 1)
		assert.NoError(t, err)
		release3()
	})
}

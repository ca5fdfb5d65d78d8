package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("absent path", func(t *testing.T) {
		value, ok, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "users/u1", map[string]any{"name": "Alice"}))

		value, ok, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"name": "Alice"}, value)
	})

	t.Run("read returns a copy", func(t *testing.T) {
		value, ok, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		require.True(t, ok)
		value.(map[string]any)["name"] = "mutated"

		again, _, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", again.(map[string]any)["name"])
	})

	t.Run("write replaces the subtree", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "users/u1", map[string]any{"photo": "p"}))

		value, ok, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"photo": "p"}, value)
	})

	t.Run("nil write deletes the node", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "users/u1", nil))

		_, ok, err := store.Read(ctx, "users/u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Write(ctx, "chamados/t1", map[string]any{
		"title":       "Printer broken",
		"lastMessage": "",
	}))

	require.NoError(t, store.Update(ctx, "chamados/t1", map[string]any{
		"lastMessage": "paper jam",
		"updatedAt":   int64(123),
	}))

	value, ok, err := store.Read(ctx, "chamados/t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"title":       "Printer broken",
		"lastMessage": "paper jam",
		"updatedAt":   int64(123),
	}, value)
}

func TestStore_Push(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.Push(ctx, "chamados/t1/mensagens", map[string]any{"text": "a"})
	require.NoError(t, err)
	second, err := store.Push(ctx, "chamados/t1/mensagens", map[string]any{"text": "b"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:8], second[:8])

	value, ok, err := store.Read(ctx, "chamados/t1/mensagens")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, value.(map[string]any), 2)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers initial snapshot", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Write(ctx, "chamados/t1/status", "open"))

		var got []any
		unsubscribe, err := store.Subscribe("chamados/t1/status", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.Len(t, got, 1)
		assert.Equal(t, "open", got[0])
	})

	t.Run("initial snapshot is nil for absent path", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados/missing", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.Len(t, got, 1)
		assert.Nil(t, got[0])
	})

	t.Run("notifies on writes in order", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados/t1/status", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.NoError(t, store.Write(ctx, "chamados/t1/status", "open"))
		require.NoError(t, store.Write(ctx, "chamados/t1/status", "closed"))

		assert.Equal(t, []any{nil, "open", "closed"}, got)
	})

	t.Run("descendant write notifies ancestor listener", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.NoError(t, store.Write(ctx, "chamados/t1/status", "open"))

		require.Len(t, got, 2)
		snapshot, ok := got[1].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, snapshot, "t1")
	})

	t.Run("ancestor write notifies descendant listener", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados/t1/status", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.NoError(t, store.Write(ctx, "chamados", map[string]any{
			"t1": map[string]any{"status": "closed"},
		}))

		require.Len(t, got, 2)
		assert.Equal(t, "closed", got[1])
	})

	t.Run("unrelated write does not notify", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados/t1", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)
		defer unsubscribe()

		require.NoError(t, store.Write(ctx, "chamados/t2/status", "open"))
		require.NoError(t, store.Write(ctx, "users/u1", map[string]any{"name": "Alice"}))

		assert.Len(t, got, 1)
	})

	t.Run("unsubscribe stops delivery and is idempotent", func(t *testing.T) {
		store := NewStore()

		var got []any
		unsubscribe, err := store.Subscribe("chamados/t1/status", func(value any) {
			got = append(got, value)
		})
		require.NoError(t, err)

		require.NoError(t, store.Write(ctx, "chamados/t1/status", "open"))
		unsubscribe()
		unsubscribe()
		require.NoError(t, store.Write(ctx, "chamados/t1/status", "closed"))

		assert.Equal(t, []any{nil, "open"}, got)
	})
}

func TestStore_ContextCancellation(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Read(ctx, "users/u1")
	assert.Error(t, err)
	assert.Error(t, store.Write(ctx, "users/u1", "x"))
	assert.Error(t, store.Update(ctx, "users/u1", map[string]any{"a": 1}))
	_, err = store.Push(ctx, "users", "x")
	assert.Error(t, err)
}

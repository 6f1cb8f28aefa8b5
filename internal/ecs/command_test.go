package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBufferEmplaceDeferredOnExistingEntity(t *testing.T) {
	r := NewRegistry(nil)
	e := r.Spawn()

	b := NewCommandBuffer()
	EmplaceDeferred(b, realHandle(e), testPosition{X: 3})
	assert.Equal(t, 1, b.Len())

	b.Flush(r)

	got, err := Get[testPosition](r, e)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.X)
	assert.Equal(t, 0, b.Len())
}

func TestCommandBufferSpawnDeferredResolvesPlaceholder(t *testing.T) {
	r := NewRegistry(nil)
	b := NewCommandBuffer()

	h := b.SpawnDeferred()
	EmplaceDeferred(b, h, testPosition{X: 7})

	b.Flush(r)

	count := 0
	NewView1[testPosition](r).Each(func(e Entity, p *testPosition) {
		count++
		assert.Equal(t, 7.0, p.X)
	})
	assert.Equal(t, 1, count)
}

func TestCommandBufferDestroyDeferred(t *testing.T) {
	r := NewRegistry(nil)
	e := r.Spawn()

	b := NewCommandBuffer()
	b.DestroyDeferred(realHandle(e))
	b.Flush(r)

	assert.False(t, r.IsAlive(e))
}

func TestCommandBufferClearDropsWithoutExecuting(t *testing.T) {
	r := NewRegistry(nil)
	e := r.Spawn()

	b := NewCommandBuffer()
	b.DestroyDeferred(realHandle(e))
	b.Clear()
	b.Flush(r)

	assert.True(t, r.IsAlive(e), "Clear must drop queued ops before Flush ever runs them")
}

func TestCommandBufferOpsRunInRecordedOrder(t *testing.T) {
	r := NewRegistry(nil)
	e := r.Spawn()

	b := NewCommandBuffer()
	EmplaceDeferred(b, realHandle(e), testPosition{X: 1})
	RemoveDeferred[testPosition](b, realHandle(e))
	b.Flush(r)

	assert.False(t, Has[testPosition](r, e), "remove recorded after emplace must win")
}

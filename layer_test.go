package jyu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushingLayer pushes another layer from its first update.
type pushingLayer struct {
	BaseLayer
	stack  *LayerStack
	child  Layer
	pushed bool
}

func (l *pushingLayer) OnUpdate(float32) {
	if !l.pushed {
		l.stack.Push(l.child)
		l.pushed = true
	}
}

func TestLayerStack_PushPop(t *testing.T) {
	s := newLayerStack()
	a := &countingLayer{}
	b := &countingLayer{}

	idA := s.Push(a)
	idB := s.Push(b)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1, a.started)
	assert.NotEmpty(t, idA.String())

	assert.True(t, s.Pop(idB))
	assert.Equal(t, 1, b.destroyed)
	assert.Equal(t, 0, a.destroyed)
	assert.False(t, s.Pop(idB))
	assert.Equal(t, []Layer{a}, s.Layers())
}

func TestLayerStack_UpdateSnapshot(t *testing.T) {
	s := newLayerStack()
	child := &countingLayer{}
	s.Push(&pushingLayer{stack: s, child: child})

	s.Update(0.01)
	assert.Equal(t, 1, child.started)
	assert.Equal(t, 0, child.updates, "a layer pushed during an update runs from the next one")

	s.Update(0.02)
	assert.Equal(t, []float32{0.02}, child.steps)
}

func TestLayerStack_Clear(t *testing.T) {
	var events []string
	s := newLayerStack()
	s.Push(&countingLayer{name: "a", events: &events})
	s.Push(&countingLayer{name: "b", events: &events})
	events = nil

	s.Clear()

	assert.Equal(t, []string{"b:destroy", "a:destroy"}, events)
	assert.Zero(t, s.Len())
}

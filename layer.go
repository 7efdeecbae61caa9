package jyu

import (
	"slices"

	"github.com/google/uuid"
)

// Layer is a unit of application behaviour driven by the frame loop.
type Layer interface {
	OnStart()
	OnDestroy()
	OnUpdate(dt float32)
	OnUIUpdate()
}

// BaseLayer implements every Layer hook as a no-op; embed it to override
// only what you need.
type BaseLayer struct{}

func (BaseLayer) OnStart()            {}
func (BaseLayer) OnDestroy()          {}
func (BaseLayer) OnUpdate(dt float32) {}
func (BaseLayer) OnUIUpdate()         {}

type LayerID uuid.UUID

func (id LayerID) String() string {
	return uuid.UUID(id).String()
}

type layerEntry struct {
	id    LayerID
	layer Layer
}

// LayerStack keeps layers in push order. Layers may push or pop layers from
// their own hooks; changes take effect from the next iteration.
type LayerStack struct {
	entries []layerEntry
}

func newLayerStack() *LayerStack {
	return &LayerStack{}
}

func (s *LayerStack) Push(layer Layer) LayerID {
	id := LayerID(uuid.New())
	s.entries = append(s.entries, layerEntry{id: id, layer: layer})
	layer.OnStart()
	return id
}

// Pop destroys and removes the layer. It reports false for unknown ids.
func (s *LayerStack) Pop(id LayerID) bool {
	i := slices.IndexFunc(s.entries, func(e layerEntry) bool { return e.id == id })
	if i == -1 {
		return false
	}
	layer := s.entries[i].layer
	s.entries = slices.Delete(s.entries, i, i+1)
	layer.OnDestroy()
	return true
}

func (s *LayerStack) Len() int {
	return len(s.entries)
}

// Layers returns the layers bottom to top.
func (s *LayerStack) Layers() []Layer {
	layers := make([]Layer, len(s.entries))
	for i, e := range s.entries {
		layers[i] = e.layer
	}
	return layers
}

func (s *LayerStack) Update(dt float32) {
	for _, layer := range s.Layers() {
		layer.OnUpdate(dt)
	}
}

func (s *LayerStack) UIUpdate() {
	for _, layer := range s.Layers() {
		layer.OnUIUpdate()
	}
}

// Clear destroys every layer, top first.
func (s *LayerStack) Clear() {
	for len(s.entries) > 0 {
		last := s.entries[len(s.entries)-1]
		s.entries = s.entries[:len(s.entries)-1]
		last.layer.OnDestroy()
	}
}

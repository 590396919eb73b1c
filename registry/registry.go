// Package registry resolves user-defined type ids to their full definitions.
package registry

import (
	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/utils"
)

//go:generate mockgen -destination=../mocks/mock_registry.go -package=mocks github.com/NethermindEth/abify/registry Registry

// Registry looks up the full definition of a struct or enum. Implementations
// used by concurrent normalizations must be safe for concurrent reads.
type Registry interface {
	Lookup(id string) (format.Definition, bool)
}

// Map is an in-memory Registry. It must not be modified while it is being
// read from other goroutines.
type Map struct {
	defs map[string]format.Definition
}

var _ Registry = (*Map)(nil)

func NewMap(defs ...format.Definition) *Map {
	m := &Map{defs: make(map[string]format.Definition, len(defs))}
	m.Add(defs...)
	return m
}

// Add registers defs, replacing any definition with the same id.
func (m *Map) Add(defs ...format.Definition) {
	for _, d := range defs {
		m.defs[d.DefinitionID()] = d
	}
}

func (m *Map) Lookup(id string) (format.Definition, bool) {
	d, ok := m.defs[id]
	return d, ok
}

func (m *Map) Len() int {
	return len(m.defs)
}

// IDs returns the registered ids in ascending order.
func (m *Map) IDs() []string {
	return utils.SortedKeys(m.defs)
}

// Definitions returns the registered definitions ordered by id.
func (m *Map) Definitions() []format.Definition {
	return utils.Map(m.IDs(), func(id string) format.Definition {
		return m.defs[id]
	})
}

package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/NethermindEth/abify/format"
	"github.com/go-playground/validator/v10"
)

var (
	ErrDirectRecursion   = errors.New("struct contains itself without indirection")
	ErrUnknownDefinition = errors.New("definition refers to an unknown user-defined type")
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the singleton used to validate definitions.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()
	})
	return v
}

// Validate checks every definition in m: required fields are set, referenced
// user-defined types exist, and no struct contains itself through members or
// statically sized arrays. Dynamic arrays and mappings are valid indirections.
func Validate(m *Map) error {
	for _, d := range m.Definitions() {
		if err := Validator().Struct(d); err != nil {
			return fmt.Errorf("definition %s: %w", d.DefinitionID(), err)
		}
		s, ok := d.(*format.StructDefinition)
		if !ok {
			continue
		}
		if err := checkReferences(m, s); err != nil {
			return err
		}
		if err := checkDirectRecursion(m, s.ID, s, []string{s.TypeName}, map[string]struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

func checkReferences(m *Map, s *format.StructDefinition) error {
	for _, member := range s.Members {
		if err := walkReferences(member.Type, func(id string) error {
			if _, ok := m.Lookup(id); !ok {
				return fmt.Errorf("%w: member %s.%s refers to %s", ErrUnknownDefinition, s.TypeName, member.Name, id)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func walkReferences(t format.Type, fn func(id string) error) error {
	switch t := t.(type) {
	case *format.StructType:
		return fn(t.ID)
	case *format.EnumType:
		return fn(t.ID)
	case *format.ArrayType:
		return walkReferences(t.Base, fn)
	case *format.MappingType:
		if err := walkReferences(t.Key, fn); err != nil {
			return err
		}
		return walkReferences(t.Value, fn)
	case *format.TupleType:
		for _, m := range t.Members {
			if err := walkReferences(m.Type, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkDirectRecursion(m *Map, root string, s *format.StructDefinition, path []string,
	visited map[string]struct{},
) error {
	visited[s.ID] = struct{}{}
	for _, member := range s.Members {
		id, ok := directStruct(member.Type)
		if !ok {
			continue
		}
		memberPath := append(slices.Clone(path), member.Name)
		if id == root {
			return fmt.Errorf("%w: %s", ErrDirectRecursion, strings.Join(memberPath, "."))
		}
		if _, seen := visited[id]; seen {
			continue
		}
		d, found := m.Lookup(id)
		if !found {
			continue
		}
		if inner, isStruct := d.(*format.StructDefinition); isStruct {
			if err := checkDirectRecursion(m, root, inner, memberPath, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// directStruct returns the id of the struct t embeds by value, if any.
func directStruct(t format.Type) (string, bool) {
	switch t := t.(type) {
	case *format.StructType:
		return t.ID, true
	case *format.ArrayType:
		if t.Kind == format.Static {
			return directStruct(t.Base)
		}
	}
	return "", false
}

// Package abify translates decoded types and results into the subset the
// contract ABI can express.
package abify

import (
	"math/bits"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
)

// NormalizeType returns the ABI type equivalent to t, or format.NotApplicable
// when there is none. Struct and enum definitions are resolved through reg,
// which may be nil if t contains neither.
func NormalizeType(t format.Type, reg registry.Registry) (format.Type, error) {
	switch t := t.(type) {
	case *format.MappingType, *format.MagicType:
		return format.NotApplicable{}, nil
	case *format.AddressType:
		return &format.AddressType{Hint: format.TypeString(t)}, nil
	case *format.ContractType:
		return &format.AddressType{Hint: format.TypeString(t)}, nil
	case *format.FunctionType:
		if t.Visibility != format.External {
			return format.NotApplicable{}, nil
		}
		return &format.FunctionType{Visibility: format.External, Hint: format.TypeString(t)}, nil
	case *format.StructType:
		def, err := lookupStruct(t, reg)
		if err != nil {
			return nil, err
		}
		// A struct reachable from its own members has no finite tuple form.
		if recursive(def, reg) {
			return format.NotApplicable{}, nil
		}
		members := make([]format.NameTypePair, len(def.Members))
		for i, m := range def.Members {
			memberType, err := NormalizeType(m.Type, reg)
			if err != nil {
				return nil, err
			}
			members[i] = format.NameTypePair{Name: m.Name, Type: memberType}
		}
		return &format.TupleType{Members: members, Hint: format.DefinitionString(def)}, nil
	case *format.EnumType:
		def, err := lookupEnum(t, reg)
		if err != nil {
			return nil, err
		}
		return &format.UintType{Bits: EnumBits(len(def.Options)), Hint: format.DefinitionString(def)}, nil
	case *format.ArrayType:
		base, err := NormalizeType(t.Base, reg)
		if err != nil {
			return nil, err
		}
		return &format.ArrayType{
			Base:     base,
			Kind:     t.Kind,
			Length:   t.Length,
			Location: t.Location,
			Hint:     format.TypeString(t),
		}, nil
	default:
		return t, nil
	}
}

// recursive reports whether def can be reached again from its own members.
// Mappings are not followed since they normalize to NotApplicable without
// looking at their key and value types. Unknown ids are skipped here and
// reported when the member itself is normalized.
func recursive(def *format.StructDefinition, reg registry.Registry) bool {
	visited := map[string]struct{}{def.ID: {}}
	var reaches func(t format.Type) bool
	reaches = func(t format.Type) bool {
		switch t := t.(type) {
		case *format.StructType:
			if t.ID == def.ID {
				return true
			}
			if _, seen := visited[t.ID]; seen {
				return false
			}
			visited[t.ID] = struct{}{}
			inner, ok := reg.Lookup(t.ID)
			if !ok {
				return false
			}
			s, ok := inner.(*format.StructDefinition)
			if !ok {
				return false
			}
			for _, m := range s.Members {
				if reaches(m.Type) {
					return true
				}
			}
		case *format.ArrayType:
			return reaches(t.Base)
		case *format.TupleType:
			for _, m := range t.Members {
				if reaches(m.Type) {
					return true
				}
			}
		}
		return false
	}
	for _, m := range def.Members {
		if reaches(m.Type) {
			return true
		}
	}
	return false
}

// EnumBits is the width of the unsigned integer an enum with numOptions
// options is encoded as: the smallest multiple of 8 that can index every
// option. An enum with a single option still takes 8 bits.
func EnumBits(numOptions int) int {
	if numOptions <= 1 {
		return 8
	}
	indexBits := bits.Len(uint(numOptions - 1))
	return 8 * ((indexBits + 7) / 8)
}

func lookupStruct(t *format.StructType, reg registry.Registry) (*format.StructDefinition, error) {
	if reg != nil {
		if def, ok := reg.Lookup(t.ID); ok {
			if s, isStruct := def.(*format.StructDefinition); isStruct {
				return s, nil
			}
		}
	}
	return nil, &UnknownUserDefinedTypeError{ID: t.ID, DisplayName: format.TypeString(t)}
}

func lookupEnum(t *format.EnumType, reg registry.Registry) (*format.EnumDefinition, error) {
	if reg != nil {
		if def, ok := reg.Lookup(t.ID); ok {
			if e, isEnum := def.(*format.EnumDefinition); isEnum {
				return e, nil
			}
		}
	}
	return nil, &UnknownUserDefinedTypeError{ID: t.ID, DisplayName: format.TypeString(t)}
}

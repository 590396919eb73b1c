package format

import (
	"strconv"
	"strings"
)

// TypeString renders t the way it would be written in source, without data
// location. This is the string attached as the hint of normalized types.
func TypeString(t Type) string {
	switch t := t.(type) {
	case *UintType:
		return "uint" + strconv.Itoa(t.Bits)
	case *IntType:
		return "int" + strconv.Itoa(t.Bits)
	case *BoolType:
		return "bool"
	case *StringType:
		return "string"
	case *BytesType:
		if t.Kind == Static {
			return "bytes" + strconv.Itoa(t.Length)
		}
		return "bytes"
	case *AddressType:
		if t.Payable {
			return "address payable"
		}
		return "address"
	case *ContractType:
		return "contract " + qualifiedName(t.DefiningContract, t.TypeName)
	case *FunctionType:
		s := "function " + string(t.Visibility)
		if t.Mutability != "" && t.Mutability != "nonpayable" {
			s += " " + t.Mutability
		}
		return s
	case *StructType:
		return "struct " + qualifiedName(t.DefiningContract, t.TypeName)
	case *TupleType:
		members := make([]string, len(t.Members))
		for i, m := range t.Members {
			members[i] = TypeString(m.Type)
			if m.Name != "" {
				members[i] += " " + m.Name
			}
		}
		return "tuple(" + strings.Join(members, ",") + ")"
	case *EnumType:
		return "enum " + qualifiedName(t.DefiningContract, t.TypeName)
	case *ArrayType:
		if t.Kind == Static {
			return TypeString(t.Base) + "[" + strconv.FormatUint(t.Length, 10) + "]"
		}
		return TypeString(t.Base) + "[]"
	case *MappingType:
		return "mapping(" + TypeString(t.Key) + " => " + TypeString(t.Value) + ")"
	case *MagicType:
		return t.Variable
	default:
		return ""
	}
}

// DefinitionString renders a full user-defined type definition.
func DefinitionString(d Definition) string {
	switch d := d.(type) {
	case *StructDefinition:
		return "struct " + qualifiedName(d.DefiningContract, d.TypeName)
	case *EnumDefinition:
		return "enum " + qualifiedName(d.DefiningContract, d.TypeName)
	default:
		return ""
	}
}

func qualifiedName(definingContract, name string) string {
	if definingContract == "" {
		return name
	}
	return definingContract + "." + name
}

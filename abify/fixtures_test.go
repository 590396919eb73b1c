package abify_test

import (
	"fmt"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
)

func options(n int) []string {
	opts := make([]string, n)
	for i := range opts {
		opts[i] = fmt.Sprintf("Option%d", i)
	}
	return opts
}

var (
	side = &format.EnumDefinition{
		ID:               "10",
		TypeName:         "Side",
		DefiningContract: "Pool",
		Options:          []string{"Buy", "Sell", "Cancel"},
	}
	wide = &format.EnumDefinition{ID: "14", TypeName: "Wide", Options: options(300)}

	// pair is {x: enum(3 options), y: address}.
	pair = &format.StructDefinition{
		ID:               "11",
		TypeName:         "Pair",
		DefiningContract: "Pool",
		Members: []format.NameTypePair{
			{Name: "x", Type: side.Stub()},
			{Name: "y", Type: &format.AddressType{}},
		},
	}
	// node reaches itself through a dynamic array.
	node = &format.StructDefinition{
		ID:       "12",
		TypeName: "Node",
		Members: []format.NameTypePair{
			{Name: "value", Type: &format.UintType{Bits: 256}},
			{Name: "children", Type: &format.ArrayType{
				Base: &format.StructType{ID: "12", TypeName: "Node", Location: format.Storage},
				Kind: format.Dynamic,
			}},
		},
	}
	holder = &format.StructDefinition{
		ID:       "13",
		TypeName: "Holder",
		Members: []format.NameTypePair{
			{Name: "balances", Type: &format.MappingType{Key: &format.AddressType{}, Value: &format.UintType{Bits: 256}}},
			{Name: "owner", Type: &format.AddressType{Payable: true}},
		},
	}
)

func testRegistry() *registry.Map {
	return registry.NewMap(side, wide, pair, node, holder)
}

// Normalized forms shared by the tests.
var (
	sideUint = &format.UintType{Bits: 8, Hint: "enum Pool.Side"}
	pairType = &format.TupleType{
		Members: []format.NameTypePair{
			{Name: "x", Type: sideUint},
			{Name: "y", Type: &format.AddressType{Hint: "address"}},
		},
		Hint: "struct Pool.Pair",
	}
)

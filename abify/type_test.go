package abify_test

import (
	"testing"

	"github.com/NethermindEth/abify/abify"
	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeType(t *testing.T) {
	internal := &format.FunctionType{Visibility: format.Internal, Mutability: "pure"}

	tests := map[string]struct {
		typ  format.Type
		want format.Type
	}{
		"mapping": {
			typ:  &format.MappingType{Key: &format.UintType{Bits: 8}, Value: &format.BoolType{}},
			want: format.NotApplicable{},
		},
		"magic": {
			typ:  &format.MagicType{Variable: "msg"},
			want: format.NotApplicable{},
		},
		"payable address": {
			typ:  &format.AddressType{Payable: true},
			want: &format.AddressType{Hint: "address payable"},
		},
		"contract": {
			typ:  &format.ContractType{ID: "20", TypeName: "Token", DefiningContract: "Pool", Payable: true},
			want: &format.AddressType{Hint: "contract Pool.Token"},
		},
		"external function": {
			typ:  &format.FunctionType{Visibility: format.External, Mutability: "view"},
			want: &format.FunctionType{Visibility: format.External, Hint: "function external view"},
		},
		"internal function": {
			typ:  internal,
			want: format.NotApplicable{},
		},
		"struct": {
			typ:  pair.Stub(format.Memory),
			want: pairType,
		},
		"enum with 3 options": {
			typ:  side.Stub(),
			want: sideUint,
		},
		"enum with 300 options": {
			typ:  wide.Stub(),
			want: &format.UintType{Bits: 16, Hint: "enum Wide"},
		},
		"static array of enums": {
			typ:  &format.ArrayType{Base: side.Stub(), Kind: format.Static, Length: 2, Location: format.Memory},
			want: &format.ArrayType{Base: sideUint, Kind: format.Static, Length: 2, Location: format.Memory, Hint: "enum Pool.Side[2]"},
		},
		"array of internal functions": {
			typ:  &format.ArrayType{Base: internal, Kind: format.Dynamic},
			want: &format.ArrayType{Base: format.NotApplicable{}, Kind: format.Dynamic, Hint: "function internal pure[]"},
		},
		"struct with a mapping member": {
			typ: holder.Stub(format.Storage),
			want: &format.TupleType{
				Members: []format.NameTypePair{
					{Name: "balances", Type: format.NotApplicable{}},
					{Name: "owner", Type: &format.AddressType{Hint: "address payable"}},
				},
				Hint: "struct Holder",
			},
		},
		"struct reachable from its own members": {
			typ:  node.Stub(format.Memory),
			want: format.NotApplicable{},
		},
		"array of a recursive struct": {
			typ:  &format.ArrayType{Base: node.Stub(format.Memory), Kind: format.Dynamic},
			want: &format.ArrayType{Base: format.NotApplicable{}, Kind: format.Dynamic, Hint: "struct Node[]"},
		},
	}

	reg := testRegistry()
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := abify.NormalizeType(test.typ, reg)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestNormalizeTypePassthrough(t *testing.T) {
	types := []format.Type{
		&format.UintType{Bits: 256},
		&format.IntType{Bits: 24},
		&format.BoolType{},
		&format.StringType{Location: format.Calldata},
		&format.BytesType{Kind: format.Dynamic, Location: format.Memory},
		&format.BytesType{Kind: format.Static, Length: 20},
		&format.TupleType{Members: []format.NameTypePair{{Name: "a", Type: &format.BoolType{}}}},
		format.NotApplicable{},
	}

	for _, typ := range types {
		t.Run(format.TypeString(typ), func(t *testing.T) {
			got, err := abify.NormalizeType(typ, nil)
			require.NoError(t, err)
			assert.Equal(t, typ, got)

			again, err := abify.NormalizeType(got, nil)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestNormalizeTypeStructMembers(t *testing.T) {
	got, err := abify.NormalizeType(pair.Stub(format.Calldata), testRegistry())
	require.NoError(t, err)

	tuple, ok := got.(*format.TupleType)
	require.True(t, ok)
	require.Len(t, tuple.Members, len(pair.Members))
	for i, m := range pair.Members {
		want, err := abify.NormalizeType(m.Type, testRegistry())
		require.NoError(t, err)
		assert.Equal(t, m.Name, tuple.Members[i].Name)
		assert.Equal(t, want, tuple.Members[i].Type)
	}
}

func TestNormalizeTypeUnknownUserDefinedType(t *testing.T) {
	tests := map[string]struct {
		typ  format.Type
		reg  registry.Registry
		want abify.UnknownUserDefinedTypeError
	}{
		"missing struct": {
			typ:  &format.StructType{ID: "99", TypeName: "Missing", DefiningContract: "Pool"},
			reg:  testRegistry(),
			want: abify.UnknownUserDefinedTypeError{ID: "99", DisplayName: "struct Pool.Missing"},
		},
		"missing enum": {
			typ:  &format.EnumType{ID: "98", TypeName: "Gone"},
			reg:  testRegistry(),
			want: abify.UnknownUserDefinedTypeError{ID: "98", DisplayName: "enum Gone"},
		},
		"no registry": {
			typ:  side.Stub(),
			want: abify.UnknownUserDefinedTypeError{ID: "10", DisplayName: "enum Pool.Side"},
		},
		"enum id of a struct": {
			typ:  &format.EnumType{ID: pair.ID, TypeName: "Pair"},
			reg:  testRegistry(),
			want: abify.UnknownUserDefinedTypeError{ID: pair.ID, DisplayName: "enum Pair"},
		},
		"missing member definition": {
			typ:  &format.ArrayType{Base: pair.Stub(format.Memory), Kind: format.Dynamic},
			reg:  registry.NewMap(pair),
			want: abify.UnknownUserDefinedTypeError{ID: side.ID, DisplayName: "enum Pool.Side"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := abify.NormalizeType(test.typ, test.reg)
			assert.Nil(t, got)

			var unknown *abify.UnknownUserDefinedTypeError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, test.want, *unknown)
		})
	}
}

func TestEnumBits(t *testing.T) {
	tests := []struct {
		options int
		want    int
	}{
		{options: 1, want: 8},
		{options: 2, want: 8},
		{options: 3, want: 8},
		{options: 255, want: 8},
		{options: 256, want: 8},
		{options: 257, want: 16},
		{options: 65536, want: 16},
		{options: 65537, want: 24},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, abify.EnumBits(test.options), "%d options", test.options)
	}

	t.Run("every option fits and the width is a multiple of 8", func(t *testing.T) {
		for n := 1; n <= 1<<17; n++ {
			bits := abify.EnumBits(n)
			require.Zero(t, bits%8, "%d options", n)
			require.GreaterOrEqual(t, bits, 8)
			require.Less(t, uint64(n-1), uint64(1)<<bits, "%d options", n)
		}
	})
}

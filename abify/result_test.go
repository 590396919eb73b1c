package abify_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/abify/abify"
	"github.com/NethermindEth/abify/format"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintValue(bits int, n int64) *format.Value {
	return &format.Value{Type: &format.UintType{Bits: bits}, Payload: &format.UintPayload{Value: big.NewInt(n)}}
}

func enumValue(n int64) *format.Value {
	return &format.Value{Type: side.Stub(), Payload: &format.EnumPayload{Numeric: big.NewInt(n)}}
}

func enumError(kind format.ErrorKind, raw int64) *format.Error {
	return &format.Error{
		Type: side.Stub(),
		Info: &format.EnumRawError{Kind: kind, ID: side.ID, Raw: big.NewInt(raw)},
	}
}

func addressValue(addr common.Address) *format.Value {
	return &format.Value{Type: &format.AddressType{}, Payload: &format.AddressPayload{Address: addr, RawAsHex: addr.Hex()}}
}

func pairValue(x int64, y common.Address) *format.Value {
	return &format.Value{
		Type: pair.Stub(format.Memory),
		Payload: &format.StructPayload{Members: []format.NamedResult{
			{Name: "x", Value: enumValue(x)},
			{Name: "y", Value: addressValue(y)},
		}},
	}
}

func normalize(t *testing.T, r format.Result) format.Result {
	t.Helper()
	got, err := abify.NormalizeResult(r, testRegistry())
	require.NoError(t, err)
	return got
}

func TestNormalizeEnumResult(t *testing.T) {
	t.Run("value becomes a uint of the enum's width", func(t *testing.T) {
		want := &format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(2)}}
		assert.Equal(t, want, normalize(t, enumValue(2)))
	})

	t.Run("out of range error that fits becomes a value", func(t *testing.T) {
		want := &format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(200)}}
		assert.Equal(t, want, normalize(t, enumError(format.EnumOutOfRangeError, 200)))
	})

	t.Run("not found error that fits becomes a value", func(t *testing.T) {
		want := &format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(255)}}
		assert.Equal(t, want, normalize(t, enumError(format.EnumNotFoundDecodingError, 255)))
	})

	t.Run("out of range error that does not fit stays an error", func(t *testing.T) {
		want := &format.Error{
			Type: sideUint,
			Info: &format.PaddingError{Kind: format.UintPaddingError, Raw: "0x12c"},
		}
		assert.Equal(t, want, normalize(t, enumError(format.EnumOutOfRangeError, 300)))
	})

	t.Run("negative raw value stays an error", func(t *testing.T) {
		want := &format.Error{
			Type: sideUint,
			Info: &format.PaddingError{Kind: format.UintPaddingError, Raw: "-0x5"},
		}
		assert.Equal(t, want, normalize(t, enumError(format.EnumOutOfRangeError, -5)))
	})

	t.Run("wide enum", func(t *testing.T) {
		r := &format.Value{Type: wide.Stub(), Payload: &format.EnumPayload{Numeric: big.NewInt(299), Name: "Option299"}}
		want := &format.Value{
			Type:    &format.UintType{Bits: 16, Hint: "enum Wide"},
			Payload: &format.UintPayload{Value: big.NewInt(299)},
		}
		assert.Equal(t, want, normalize(t, r))
	})

	t.Run("value that does not fit is inconsistent", func(t *testing.T) {
		_, err := abify.NormalizeResult(enumValue(256), testRegistry())

		var inconsistent *abify.InconsistentEnumValueError
		require.ErrorAs(t, err, &inconsistent)
		assert.Equal(t, side.ID, inconsistent.ID)
		assert.Equal(t, 8, inconsistent.Bits)
		assert.Equal(t, "256", inconsistent.Numeric.String())
	})

	t.Run("negative value is inconsistent", func(t *testing.T) {
		_, err := abify.NormalizeResult(enumValue(-1), testRegistry())

		var inconsistent *abify.InconsistentEnumValueError
		require.ErrorAs(t, err, &inconsistent)
		assert.Equal(t, "-1", inconsistent.Numeric.String())
	})

	t.Run("unexpected error kind", func(t *testing.T) {
		r := &format.Error{Type: side.Stub(), Info: &format.PaddingError{Kind: format.EnumPaddingError, Raw: "0x01"}}
		_, err := abify.NormalizeResult(r, testRegistry())

		var unknown *abify.UnknownUserDefinedTypeError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, side.ID, unknown.ID)
	})

	t.Run("input is not modified", func(t *testing.T) {
		r := enumValue(1)
		normalize(t, r)
		assert.Equal(t, enumValue(1), r)
	})
}

func TestNormalizeContractResult(t *testing.T) {
	contract := &format.ContractType{ID: "20", TypeName: "Token", DefiningContract: "Pool"}
	tokenAddress := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	addressType := &format.AddressType{Hint: "contract Pool.Token"}

	t.Run("value", func(t *testing.T) {
		r := &format.Value{Type: contract, Payload: &format.ContractPayload{
			Address:    tokenAddress,
			RawAddress: "0x00000000000000000000000000000000000000AA",
			Class:      "Token",
		}}
		want := &format.Value{Type: addressType, Payload: &format.AddressPayload{
			Address:  tokenAddress,
			RawAsHex: "0x00000000000000000000000000000000000000AA",
		}}
		assert.Equal(t, want, normalize(t, r))
	})

	t.Run("padding error is re-tagged", func(t *testing.T) {
		raw := "0xff000000000000000000000000000000000000000000000000000000000000aa"
		r := &format.Error{Type: contract, Info: &format.PaddingError{Kind: format.ContractPaddingError, Raw: raw}}
		want := &format.Error{Type: addressType, Info: &format.PaddingError{Kind: format.AddressPaddingError, Raw: raw}}
		assert.Equal(t, want, normalize(t, r))
	})

	t.Run("other errors are kept", func(t *testing.T) {
		info := &format.GenericError{Kind: format.ReadErrorStack, Start: big.NewInt(3), Length: big.NewInt(1)}
		got := normalize(t, &format.Error{Type: contract, Info: info})

		require.IsType(t, &format.Error{}, got)
		assert.Equal(t, addressType, got.ResultType())
		assert.Same(t, info, got.(*format.Error).Info)
	})
}

func TestNormalizeAddressAndFunctionResults(t *testing.T) {
	addr := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	t.Run("address keeps its payload", func(t *testing.T) {
		r := &format.Value{Type: &format.AddressType{Payable: true}, Payload: &format.AddressPayload{Address: addr}}
		got := normalize(t, r)

		assert.Equal(t, &format.AddressType{Hint: "address payable"}, got.ResultType())
		assert.Same(t, r.Payload, got.(*format.Value).Payload)
	})

	t.Run("address error keeps its info", func(t *testing.T) {
		info := &format.PaddingError{Kind: format.AddressPaddingError, Raw: "0x01"}
		got := normalize(t, &format.Error{Type: &format.AddressType{}, Info: info})

		assert.Equal(t, &format.Error{Type: &format.AddressType{Hint: "address"}, Info: info}, got)
	})

	t.Run("external function keeps its payload", func(t *testing.T) {
		payload := &format.ExternalFunctionPayload{
			Contract: format.ContractPayload{Address: addr},
			Selector: [4]byte{1, 2, 3, 4},
		}
		r := &format.Value{Type: &format.FunctionType{Visibility: format.External, Mutability: "payable"}, Payload: payload}

		want := &format.Value{
			Type:    &format.FunctionType{Visibility: format.External, Hint: "function external payable"},
			Payload: payload,
		}
		assert.Equal(t, want, normalize(t, r))
	})

	t.Run("internal function is not applicable", func(t *testing.T) {
		r := &format.Value{
			Type:    &format.FunctionType{Visibility: format.Internal},
			Payload: &format.InternalFunctionPayload{Context: "Pool", DeployedProgramCounter: 10},
		}
		assert.Equal(t, format.NotApplicable{}, normalize(t, r))
	})

	t.Run("internal function error is not applicable", func(t *testing.T) {
		r := &format.Error{
			Type: &format.FunctionType{Visibility: format.Internal},
			Info: &format.GenericError{Kind: format.NoSuchInternalFunctionError},
		}
		assert.Equal(t, format.NotApplicable{}, normalize(t, r))
	})
}

func TestNormalizeNotApplicableResults(t *testing.T) {
	tests := map[string]format.Result{
		"not applicable": format.NotApplicable{},
		"mapping": &format.Value{
			Type:    &format.MappingType{Key: &format.UintType{Bits: 8}, Value: &format.UintType{Bits: 8}},
			Payload: &format.MappingPayload{Entries: []format.KeyValuePair{{Key: uintValue(8, 1), Value: uintValue(8, 2)}}},
		},
		"magic": &format.Value{
			Type:    &format.MagicType{Variable: "msg"},
			Payload: &format.MagicPayload{Fields: []format.NamedResult{{Name: "value", Value: uintValue(256, 0)}}},
		},
		"circular struct": &format.Value{
			Type:    pair.Stub(format.Memory),
			Payload: &format.StructPayload{Reference: 1},
		},
		"circular array": &format.Value{
			Type:    &format.ArrayType{Base: side.Stub(), Kind: format.Dynamic},
			Payload: &format.ArrayPayload{Reference: 3},
		},
	}

	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, format.NotApplicable{}, normalize(t, r))
		})
	}
}

func TestNormalizeStructResult(t *testing.T) {
	y := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	t.Run("members are normalized in order", func(t *testing.T) {
		want := &format.Value{
			Type: pairType,
			Payload: &format.TuplePayload{Members: []format.NamedResult{
				{Name: "x", Value: &format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(1)}}},
				{Name: "y", Value: &format.Value{
					Type:    &format.AddressType{Hint: "address"},
					Payload: &format.AddressPayload{Address: y, RawAsHex: y.Hex()},
				}},
			}},
		}
		assert.Equal(t, want, normalize(t, pairValue(1, y)))
	})

	t.Run("not applicable members are kept", func(t *testing.T) {
		r := &format.Value{
			Type: holder.Stub(format.Storage),
			Payload: &format.StructPayload{Members: []format.NamedResult{
				{Name: "balances", Value: &format.Value{
					Type:    holder.Members[0].Type,
					Payload: &format.MappingPayload{},
				}},
				{Name: "owner", Value: &format.Value{
					Type:    &format.AddressType{Payable: true},
					Payload: &format.AddressPayload{Address: y},
				}},
			}},
		}

		got := normalize(t, r)
		require.IsType(t, &format.Value{}, got)
		members := got.(*format.Value).Payload.(*format.TuplePayload).Members
		require.Len(t, members, 2)
		assert.Equal(t, format.NamedResult{Name: "balances", Value: format.NotApplicable{}}, members[0])
		assert.Equal(t, "owner", members[1].Name)
		assert.Equal(t, &format.AddressType{Hint: "address payable"}, members[1].Value.ResultType())
	})

	t.Run("recursive struct with a circular member", func(t *testing.T) {
		r := &format.Value{
			Type: node.Stub(format.Memory),
			Payload: &format.StructPayload{Members: []format.NamedResult{
				{Name: "value", Value: uintValue(256, 7)},
				{Name: "children", Value: &format.Value{
					Type: node.Members[1].Type,
					Payload: &format.ArrayPayload{Elements: []format.Result{
						&format.Value{Type: node.Stub(format.Memory), Payload: &format.StructPayload{Reference: 2}},
					}},
				}},
			}},
		}
		assert.Equal(t, format.NotApplicable{}, normalize(t, r))
	})

	t.Run("error keeps its info", func(t *testing.T) {
		info := &format.GenericError{Kind: format.OverlargePointersNotImplemented, Location: format.Memory, Start: big.NewInt(1)}
		got := normalize(t, &format.Error{Type: pair.Stub(format.Memory), Info: info})

		assert.Equal(t, &format.Error{Type: pairType, Info: info}, got)
	})

	t.Run("unknown member enum aborts", func(t *testing.T) {
		r := &format.Value{
			Type: pair.Stub(format.Memory),
			Payload: &format.StructPayload{Members: []format.NamedResult{
				{Name: "x", Value: &format.Value{
					Type:    &format.EnumType{ID: "77", TypeName: "Lost"},
					Payload: &format.EnumPayload{Numeric: big.NewInt(0)},
				}},
			}},
		}
		got, err := abify.NormalizeResult(r, testRegistry())
		assert.Nil(t, got)

		var unknown *abify.UnknownUserDefinedTypeError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "77", unknown.ID)
	})

	t.Run("payload of the wrong class", func(t *testing.T) {
		r := &format.Value{Type: pair.Stub(format.Memory), Payload: &format.UintPayload{Value: big.NewInt(1)}}
		_, err := abify.NormalizeResult(r, testRegistry())
		assert.ErrorIs(t, err, abify.ErrPayloadMismatch)
	})
}

func TestNormalizeArrayResult(t *testing.T) {
	arrayType := &format.ArrayType{Base: side.Stub(), Kind: format.Static, Length: 3, Location: format.Memory}
	normalizedType := &format.ArrayType{
		Base:     sideUint,
		Kind:     format.Static,
		Length:   3,
		Location: format.Memory,
		Hint:     "enum Pool.Side[3]",
	}

	t.Run("elements are normalized in order", func(t *testing.T) {
		r := &format.Value{Type: arrayType, Payload: &format.ArrayPayload{Elements: []format.Result{
			enumValue(0),
			enumError(format.EnumOutOfRangeError, 9),
			enumError(format.EnumOutOfRangeError, 1000),
		}}}
		want := &format.Value{Type: normalizedType, Payload: &format.ArrayPayload{Elements: []format.Result{
			&format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(0)}},
			&format.Value{Type: sideUint, Payload: &format.UintPayload{Value: big.NewInt(9)}},
			&format.Error{Type: sideUint, Info: &format.PaddingError{Kind: format.UintPaddingError, Raw: "0x3e8"}},
		}}}
		assert.Equal(t, want, normalize(t, r))
	})

	t.Run("error keeps its info", func(t *testing.T) {
		info := &format.GenericError{Kind: format.OverlongArraysAndStringsNotImplemented, Length: big.NewInt(1 << 40)}
		assert.Equal(t, &format.Error{Type: normalizedType, Info: info}, normalize(t, &format.Error{Type: arrayType, Info: info}))
	})

	t.Run("array of internal functions keeps not applicable elements", func(t *testing.T) {
		internal := &format.FunctionType{Visibility: format.Internal}
		r := &format.Value{
			Type: &format.ArrayType{Base: internal, Kind: format.Dynamic},
			Payload: &format.ArrayPayload{Elements: []format.Result{
				&format.Value{Type: internal, Payload: &format.InternalFunctionPayload{DeployedProgramCounter: 4}},
			}},
		}
		want := &format.Value{
			Type:    &format.ArrayType{Base: format.NotApplicable{}, Kind: format.Dynamic, Hint: "function internal[]"},
			Payload: &format.ArrayPayload{Elements: []format.Result{format.NotApplicable{}}},
		}
		assert.Equal(t, want, normalize(t, r))
	})
}

func TestNormalizeResultPassthrough(t *testing.T) {
	results := map[string]format.Result{
		"uint": uintValue(64, 42),
		"int":  &format.Value{Type: &format.IntType{Bits: 8}, Payload: &format.IntPayload{Value: big.NewInt(-1)}},
		"bool error": &format.Error{
			Type: &format.BoolType{},
			Info: &format.BoolRangeError{Raw: big.NewInt(2)},
		},
		"string": &format.Value{Type: &format.StringType{}, Payload: &format.StringPayload{Value: "abi"}},
	}

	for name, r := range results {
		t.Run(name, func(t *testing.T) {
			assert.Same(t, r, normalize(t, r))
		})
	}
}

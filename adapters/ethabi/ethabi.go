// Package ethabi maps normalized types and results onto go-ethereum's ABI
// package, so that they can be encoded exactly as a contract call would be.
package ethabi

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/NethermindEth/abify/format"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrNotEncodable is returned for types and results outside the ABI subset:
// not applicable results, decoding errors and non-normalized type classes.
var ErrNotEncodable = errors.New("not ABI encodable")

// Parameter returns the JSON ABI description of a parameter of type t. The
// type hint becomes the parameter's internalType.
func Parameter(name string, t format.Type) (abi.ArgumentMarshaling, error) {
	typ, components, err := typeString(t)
	if err != nil {
		return abi.ArgumentMarshaling{}, err
	}
	return abi.ArgumentMarshaling{Name: name, Type: typ, InternalType: t.TypeHint(), Components: components}, nil
}

// Type returns the go-ethereum type for a normalized type.
func Type(t format.Type) (abi.Type, error) {
	typ, components, err := typeString(t)
	if err != nil {
		return abi.Type{}, err
	}
	return abi.NewType(typ, t.TypeHint(), components)
}

func typeString(t format.Type) (string, []abi.ArgumentMarshaling, error) {
	switch t := t.(type) {
	case *format.UintType:
		return "uint" + strconv.Itoa(t.Bits), nil, nil
	case *format.IntType:
		return "int" + strconv.Itoa(t.Bits), nil, nil
	case *format.BoolType:
		return "bool", nil, nil
	case *format.StringType:
		return "string", nil, nil
	case *format.BytesType:
		if t.Kind == format.Static {
			return "bytes" + strconv.Itoa(t.Length), nil, nil
		}
		return "bytes", nil, nil
	case *format.AddressType:
		return "address", nil, nil
	case *format.FunctionType:
		if t.Visibility != format.External {
			return "", nil, fmt.Errorf("%w: %s function", ErrNotEncodable, t.Visibility)
		}
		return "function", nil, nil
	case *format.TupleType:
		components := make([]abi.ArgumentMarshaling, len(t.Members))
		for i, m := range t.Members {
			component, err := Parameter(m.Name, m.Type)
			if err != nil {
				return "", nil, fmt.Errorf("member %s: %w", m.Name, err)
			}
			components[i] = component
		}
		return "tuple", components, nil
	case *format.ArrayType:
		base, components, err := typeString(t.Base)
		if err != nil {
			return "", nil, err
		}
		if t.Kind == format.Static {
			return base + "[" + strconv.FormatUint(t.Length, 10) + "]", components, nil
		}
		return base + "[]", components, nil
	default:
		return "", nil, fmt.Errorf("%w: %s type", ErrNotEncodable, t.TypeClass())
	}
}

// GoValue converts a normalized value into the Go value go-ethereum packs for
// typ, which must be the result of Type on r's type.
func GoValue(typ abi.Type, r format.Result) (any, error) {
	v, err := goValue(typ, r)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func goValue(typ abi.Type, r format.Result) (reflect.Value, error) {
	value, ok := r.(*format.Value)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s result", ErrNotEncodable, r.ResultKind())
	}

	switch typ.T {
	case abi.UintTy:
		payload, ok := value.Payload.(*format.UintPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return uintValue(typ, payload.Value)
	case abi.IntTy:
		payload, ok := value.Payload.(*format.IntPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return intValue(typ, payload.Value)
	case abi.BoolTy:
		payload, ok := value.Payload.(*format.BoolPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return reflect.ValueOf(payload.Value), nil
	case abi.StringTy:
		payload, ok := value.Payload.(*format.StringPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return reflect.ValueOf(payload.Value), nil
	case abi.BytesTy:
		payload, ok := value.Payload.(*format.BytesPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return reflect.ValueOf(payload.Value), nil
	case abi.FixedBytesTy:
		payload, ok := value.Payload.(*format.BytesPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		if len(payload.Value) != typ.Size {
			return reflect.Value{}, fmt.Errorf("%w: %d bytes for %s", ErrNotEncodable, len(payload.Value), typ)
		}
		// Fixed bytes are Go arrays, which can only be built through reflection.
		array := reflect.New(typ.GetType()).Elem()
		reflect.Copy(array, reflect.ValueOf(payload.Value))
		return array, nil
	case abi.AddressTy:
		payload, ok := value.Payload.(*format.AddressPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		return reflect.ValueOf(payload.Address), nil
	case abi.FunctionTy:
		payload, ok := value.Payload.(*format.ExternalFunctionPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		var function [24]byte
		copy(function[:common.AddressLength], payload.Contract.Address[:])
		copy(function[common.AddressLength:], payload.Selector[:])
		return reflect.ValueOf(function), nil
	case abi.TupleTy:
		payload, ok := value.Payload.(*format.TuplePayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		if len(payload.Members) != len(typ.TupleElems) {
			return reflect.Value{}, fmt.Errorf("%w: %d members for %s", ErrNotEncodable, len(payload.Members), typ)
		}
		st := reflect.New(typ.GetType()).Elem()
		for i, elem := range typ.TupleElems {
			field, err := goValue(*elem, payload.Members[i].Value)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("member %s: %w", payload.Members[i].Name, err)
			}
			st.Field(i).Set(field)
		}
		return st, nil
	case abi.SliceTy, abi.ArrayTy:
		payload, ok := value.Payload.(*format.ArrayPayload)
		if !ok {
			return reflect.Value{}, mismatch(typ, value.Payload)
		}
		var list reflect.Value
		if typ.T == abi.SliceTy {
			list = reflect.MakeSlice(typ.GetType(), len(payload.Elements), len(payload.Elements))
		} else {
			if len(payload.Elements) != typ.Size {
				return reflect.Value{}, fmt.Errorf("%w: %d elements for %s", ErrNotEncodable, len(payload.Elements), typ)
			}
			list = reflect.New(typ.GetType()).Elem()
		}
		for i, e := range payload.Elements {
			element, err := goValue(*typ.Elem, e)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			list.Index(i).Set(element)
		}
		return list, nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotEncodable, typ)
	}
}

func uintValue(typ abi.Type, n *big.Int) (reflect.Value, error) {
	if n.Sign() < 0 || n.BitLen() > typ.Size {
		return reflect.Value{}, fmt.Errorf("%w: %s does not fit %s", ErrNotEncodable, n, typ)
	}
	switch typ.Size {
	case 8:
		return reflect.ValueOf(uint8(n.Uint64())), nil
	case 16:
		return reflect.ValueOf(uint16(n.Uint64())), nil
	case 32:
		return reflect.ValueOf(uint32(n.Uint64())), nil
	case 64:
		return reflect.ValueOf(n.Uint64()), nil
	default:
		return reflect.ValueOf(new(big.Int).Set(n)), nil
	}
}

func intValue(typ abi.Type, n *big.Int) (reflect.Value, error) {
	// Two's complement range of an intN is [-2^(N-1), 2^(N-1)).
	limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s does not fit %s", ErrNotEncodable, n, typ)
	}
	switch typ.Size {
	case 8:
		return reflect.ValueOf(int8(n.Int64())), nil
	case 16:
		return reflect.ValueOf(int16(n.Int64())), nil
	case 32:
		return reflect.ValueOf(int32(n.Int64())), nil
	case 64:
		return reflect.ValueOf(n.Int64()), nil
	default:
		return reflect.ValueOf(new(big.Int).Set(n)), nil
	}
}

func mismatch(typ abi.Type, payload format.Payload) error {
	return fmt.Errorf("%w: %T payload for %s", ErrNotEncodable, payload, typ)
}

// Arguments builds the go-ethereum argument list and packable values for
// normalized arguments.
func Arguments(args []format.Argument) (abi.Arguments, []any, error) {
	arguments := make(abi.Arguments, len(args))
	values := make([]any, len(args))
	for i, arg := range args {
		typ, err := Type(arg.Value.ResultType())
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		value, err := GoValue(typ, arg.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		arguments[i] = abi.Argument{Name: arg.Name, Type: typ}
		values[i] = value
	}
	return arguments, values, nil
}

// Pack ABI-encodes normalized arguments as a call's parameters or return
// values.
func Pack(args []format.Argument) ([]byte, error) {
	arguments, values, err := Arguments(args)
	if err != nil {
		return nil, err
	}
	return arguments.Pack(values...)
}

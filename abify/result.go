package abify

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeResult returns the ABI counterpart of r: a value or error whose type
// is NormalizeType(r.ResultType()), or format.NotApplicable. Inputs are never
// modified; unchanged payloads are shared with the output.
//
// An error aborts the whole normalization and no partial result is returned.
func NormalizeResult(r format.Result, reg registry.Registry) (format.Result, error) {
	if _, ok := r.(format.NotApplicable); ok {
		return format.NotApplicable{}, nil
	}

	switch t := r.ResultType().(type) {
	case *format.MappingType, *format.MagicType:
		return format.NotApplicable{}, nil
	case *format.AddressType:
		return retype(r, t, reg)
	case *format.ContractType:
		return normalizeContract(r, t, reg)
	case *format.FunctionType:
		if t.Visibility != format.External {
			return format.NotApplicable{}, nil
		}
		return retype(r, t, reg)
	case *format.StructType:
		return normalizeStruct(r, t, reg)
	case *format.EnumType:
		return normalizeEnum(r, t, reg)
	case *format.ArrayType:
		return normalizeArray(r, t, reg)
	default:
		return r, nil
	}
}

// retype replaces the type of r with its normalized form, keeping the payload.
func retype(r format.Result, t format.Type, reg registry.Registry) (format.Result, error) {
	normalized, err := NormalizeType(t, reg)
	if err != nil {
		return nil, err
	}
	if format.IsNotApplicable(normalized) {
		return format.NotApplicable{}, nil
	}
	switch r := r.(type) {
	case *format.Value:
		return &format.Value{Type: normalized, Payload: r.Payload}, nil
	case *format.Error:
		return &format.Error{Type: normalized, Info: r.Info}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrPayloadMismatch, r)
	}
}

func normalizeContract(r format.Result, t *format.ContractType, reg registry.Registry) (format.Result, error) {
	normalized, err := NormalizeType(t, reg)
	if err != nil {
		return nil, err
	}
	switch r := r.(type) {
	case *format.Value:
		payload, ok := r.Payload.(*format.ContractPayload)
		if !ok {
			return nil, mismatch(t, r.Payload)
		}
		return &format.Value{
			Type:    normalized,
			Payload: &format.AddressPayload{Address: payload.Address, RawAsHex: payload.RawAddress},
		}, nil
	case *format.Error:
		if padding, ok := r.Info.(*format.PaddingError); ok && padding.Kind == format.ContractPaddingError {
			return &format.Error{
				Type: normalized,
				Info: &format.PaddingError{Kind: format.AddressPaddingError, Raw: padding.Raw},
			}, nil
		}
		// Remaining kinds are generic read errors, valid for any type.
		return &format.Error{Type: normalized, Info: r.Info}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrPayloadMismatch, r)
	}
}

func normalizeStruct(r format.Result, t *format.StructType, reg registry.Registry) (format.Result, error) {
	switch r := r.(type) {
	case *format.Value:
		payload, ok := r.Payload.(*format.StructPayload)
		if !ok {
			return nil, mismatch(t, r.Payload)
		}
		if payload.Reference > 0 {
			return format.NotApplicable{}, nil
		}
		members := make([]format.NamedResult, len(payload.Members))
		for i, m := range payload.Members {
			value, err := NormalizeResult(m.Value, reg)
			if err != nil {
				return nil, err
			}
			members[i] = format.NamedResult{Name: m.Name, Value: value}
		}
		normalized, err := NormalizeType(t, reg)
		if err != nil {
			return nil, err
		}
		if format.IsNotApplicable(normalized) {
			return format.NotApplicable{}, nil
		}
		return &format.Value{Type: normalized, Payload: &format.TuplePayload{Members: members}}, nil
	default:
		return retype(r, t, reg)
	}
}

func normalizeEnum(r format.Result, t *format.EnumType, reg registry.Registry) (format.Result, error) {
	normalized, err := NormalizeType(t, reg)
	if err != nil {
		return nil, err
	}
	width := normalized.(*format.UintType).Bits

	var numeric *big.Int
	switch r := r.(type) {
	case *format.Value:
		payload, ok := r.Payload.(*format.EnumPayload)
		if !ok {
			return nil, mismatch(t, r.Payload)
		}
		numeric = payload.Numeric
	case *format.Error:
		info, ok := r.Info.(*format.EnumRawError)
		if !ok || (info.Kind != format.EnumOutOfRangeError && info.Kind != format.EnumNotFoundDecodingError) {
			return nil, &UnknownUserDefinedTypeError{ID: t.ID, DisplayName: format.TypeString(t)}
		}
		numeric = info.Raw
	default:
		return nil, fmt.Errorf("%w: %T", ErrPayloadMismatch, r)
	}

	// An out of range enum is still a well-formed unsigned integer, as long as
	// it is not negative.
	if numeric.Sign() >= 0 && numeric.BitLen() <= width {
		return &format.Value{Type: normalized, Payload: &format.UintPayload{Value: numeric}}, nil
	}
	if r.ResultKind() == format.KindValue {
		return nil, &InconsistentEnumValueError{ID: t.ID, Numeric: numeric, Bits: width}
	}
	return &format.Error{
		Type: normalized,
		Info: &format.PaddingError{Kind: format.UintPaddingError, Raw: hexutil.EncodeBig(numeric)},
	}, nil
}

func normalizeArray(r format.Result, t *format.ArrayType, reg registry.Registry) (format.Result, error) {
	switch r := r.(type) {
	case *format.Value:
		payload, ok := r.Payload.(*format.ArrayPayload)
		if !ok {
			return nil, mismatch(t, r.Payload)
		}
		if payload.Reference > 0 {
			return format.NotApplicable{}, nil
		}
		elements := make([]format.Result, len(payload.Elements))
		for i, e := range payload.Elements {
			element, err := NormalizeResult(e, reg)
			if err != nil {
				return nil, err
			}
			elements[i] = element
		}
		normalized, err := NormalizeType(t, reg)
		if err != nil {
			return nil, err
		}
		return &format.Value{Type: normalized, Payload: &format.ArrayPayload{Elements: elements}}, nil
	default:
		return retype(r, t, reg)
	}
}

func mismatch(t format.Type, payload format.Payload) error {
	return fmt.Errorf("%w: %s value with %T", ErrPayloadMismatch, format.TypeString(t), payload)
}

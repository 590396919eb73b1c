package abify

import (
	"fmt"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
)

// NormalizeArguments normalizes the value of every argument, keeping names,
// indexed flags and order.
func NormalizeArguments(args []format.Argument, reg registry.Registry) ([]format.Argument, error) {
	if args == nil {
		return nil, nil
	}
	normalized := make([]format.Argument, len(args))
	for i, arg := range args {
		value, err := NormalizeResult(arg.Value, reg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		normalized[i] = format.Argument{Name: arg.Name, Indexed: arg.Indexed, Value: value}
	}
	return normalized, nil
}

// NormalizeCalldata returns d in ABI mode. A decoding already in ABI mode is
// returned as is.
func NormalizeCalldata(d *format.CalldataDecoding, reg registry.Registry) (*format.CalldataDecoding, error) {
	if d.Mode == format.ModeABI {
		return d, nil
	}
	normalized := *d
	normalized.Mode = format.ModeABI
	if d.Kind == format.CalldataFunction || d.Kind == format.CalldataConstructor {
		args, err := NormalizeArguments(d.Arguments, reg)
		if err != nil {
			return nil, err
		}
		normalized.Arguments = args
	}
	return &normalized, nil
}

// NormalizeLog returns d in ABI mode. A decoding already in ABI mode is
// returned as is.
func NormalizeLog(d *format.LogDecoding, reg registry.Registry) (*format.LogDecoding, error) {
	if d.Mode == format.ModeABI {
		return d, nil
	}
	args, err := NormalizeArguments(d.Arguments, reg)
	if err != nil {
		return nil, err
	}
	normalized := *d
	normalized.Mode = format.ModeABI
	normalized.Arguments = args
	return &normalized, nil
}

// NormalizeReturndata returns d in ABI mode. Only return and revert decodings
// carry arguments; other kinds just change mode.
func NormalizeReturndata(d *format.ReturndataDecoding, reg registry.Registry) (*format.ReturndataDecoding, error) {
	if d.Mode == format.ModeABI {
		return d, nil
	}
	normalized := *d
	normalized.Mode = format.ModeABI
	if d.Kind == format.ReturnValues || d.Kind == format.ReturnRevert {
		args, err := NormalizeArguments(d.Arguments, reg)
		if err != nil {
			return nil, err
		}
		normalized.Arguments = args
	}
	return &normalized, nil
}

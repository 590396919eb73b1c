package format

import "math/big"

// ErrorKind tags the decoding errors a decoder can attach to a result.
type ErrorKind string

const (
	UintPaddingError                       ErrorKind = "UintPaddingError"
	IntPaddingError                        ErrorKind = "IntPaddingError"
	BoolPaddingError                       ErrorKind = "BoolPaddingError"
	BoolOutOfRangeError                    ErrorKind = "BoolOutOfRangeError"
	BytesPaddingError                      ErrorKind = "BytesPaddingError"
	AddressPaddingError                    ErrorKind = "AddressPaddingError"
	ContractPaddingError                   ErrorKind = "ContractPaddingError"
	EnumPaddingError                       ErrorKind = "EnumPaddingError"
	EnumOutOfRangeError                    ErrorKind = "EnumOutOfRangeError"
	EnumNotFoundDecodingError              ErrorKind = "EnumNotFoundDecodingError"
	FunctionExternalNonStackPaddingError   ErrorKind = "FunctionExternalNonStackPaddingError"
	NoSuchInternalFunctionError            ErrorKind = "NoSuchInternalFunctionError"
	MalformedInternalFunctionError         ErrorKind = "MalformedInternalFunctionError"
	UserDefinedTypeNotFoundError           ErrorKind = "UserDefinedTypeNotFoundError"
	ReadErrorStack                         ErrorKind = "ReadErrorStack"
	ReadErrorBytes                         ErrorKind = "ReadErrorBytes"
	OverlongArraysAndStringsNotImplemented ErrorKind = "OverlongArraysAndStringsNotImplementedError"
	OverlargePointersNotImplemented        ErrorKind = "OverlargePointersNotImplementedError"
)

// ErrorInfo is the payload of an error result.
type ErrorInfo interface {
	ErrorKind() ErrorKind
	isErrorInfo()
}

// PaddingError reports a word whose padding did not match its type. Raw is the
// whole word as a 0x-prefixed hex string.
type PaddingError struct {
	Kind ErrorKind
	Raw  string
}

// EnumRawError carries the integer that could not be mapped to an option of
// the enum with the given ID.
type EnumRawError struct {
	Kind ErrorKind
	ID   string
	Raw  *big.Int
}

type BoolRangeError struct {
	Raw *big.Int
}

// GenericError covers read and pointer errors that are not specific to any
// type class. The fields used depend on Kind.
type GenericError struct {
	Kind     ErrorKind
	ID       string
	Location Location
	Start    *big.Int
	Length   *big.Int
	Message  string
}

func (e *PaddingError) ErrorKind() ErrorKind { return e.Kind }
func (e *EnumRawError) ErrorKind() ErrorKind { return e.Kind }
func (*BoolRangeError) ErrorKind() ErrorKind { return BoolOutOfRangeError }
func (e *GenericError) ErrorKind() ErrorKind { return e.Kind }

func (*PaddingError) isErrorInfo()   {}
func (*EnumRawError) isErrorInfo()   {}
func (*BoolRangeError) isErrorInfo() {}
func (*GenericError) isErrorInfo()   {}

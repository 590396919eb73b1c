package format

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type ResultKind string

const (
	KindValue         ResultKind = "value"
	KindError         ResultKind = "error"
	KindNotApplicable ResultKind = "notApplicable"
)

// Result is a decoded outcome paired with its type: a *Value, an *Error or
// NotApplicable.
type Result interface {
	ResultKind() ResultKind
	ResultType() Type
	isResult()
}

// Value is a successfully decoded result.
type Value struct {
	Type    Type
	Payload Payload
}

// Error is a result the decoder could not make sense of.
type Error struct {
	Type Type
	Info ErrorInfo
}

func (*Value) ResultKind() ResultKind        { return KindValue }
func (*Error) ResultKind() ResultKind        { return KindError }
func (NotApplicable) ResultKind() ResultKind { return KindNotApplicable }
func (v *Value) ResultType() Type            { return v.Type }
func (e *Error) ResultType() Type            { return e.Type }
func (n NotApplicable) ResultType() Type     { return n }
func (*Value) isResult()                     {}
func (*Error) isResult()                     {}
func (NotApplicable) isResult()              {}

// NamedResult is a member of a struct, tuple or magic value.
type NamedResult struct {
	Name  string
	Value Result
}

// Payload is the data of a *Value. The payload variant always matches the
// class of the value's type, except that a tuple carries a TuplePayload.
type Payload interface {
	isPayload()
}

// Big integers in payloads are shared between results and must never be
// written to.

type UintPayload struct {
	Value *big.Int
}

type IntPayload struct {
	Value *big.Int
}

type BoolPayload struct {
	Value bool
}

type StringPayload struct {
	Value string
}

type BytesPayload struct {
	Value []byte
}

type AddressPayload struct {
	Address  common.Address
	RawAsHex string
}

// ContractPayload identifies the contract at Address. Class is the name of the
// contract found there, if any.
type ContractPayload struct {
	Address    common.Address
	RawAddress string
	Class      string
}

type ExternalFunctionPayload struct {
	Contract ContractPayload
	Selector [4]byte
	// Name is the name of the function the selector resolved to, if any.
	Name string
}

type InternalFunctionPayload struct {
	Context                   string
	DeployedProgramCounter    uint64
	ConstructorProgramCounter uint64
	Name                      string
}

// StructPayload holds the members of a struct in declaration order. A
// positive Reference marks a circular value: it points that many levels up
// the tree instead of holding fresh data.
type StructPayload struct {
	Members   []NamedResult
	Reference int
}

type TuplePayload struct {
	Members []NamedResult
}

type EnumPayload struct {
	Numeric *big.Int
	Name    string
}

// ArrayPayload holds the elements of an array. Reference has the same meaning
// as in StructPayload.
type ArrayPayload struct {
	Elements  []Result
	Reference int
}

type KeyValuePair struct {
	Key   Result
	Value Result
}

type MappingPayload struct {
	Entries []KeyValuePair
}

type MagicPayload struct {
	Fields []NamedResult
}

func (*UintPayload) isPayload()             {}
func (*IntPayload) isPayload()              {}
func (*BoolPayload) isPayload()             {}
func (*StringPayload) isPayload()           {}
func (*BytesPayload) isPayload()            {}
func (*AddressPayload) isPayload()          {}
func (*ContractPayload) isPayload()         {}
func (*ExternalFunctionPayload) isPayload() {}
func (*InternalFunctionPayload) isPayload() {}
func (*StructPayload) isPayload()           {}
func (*TuplePayload) isPayload()            {}
func (*EnumPayload) isPayload()             {}
func (*ArrayPayload) isPayload()            {}
func (*MappingPayload) isPayload()          {}
func (*MagicPayload) isPayload()            {}

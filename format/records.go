package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrUnknownTypeClass  = errors.New("unknown type class")
	ErrUnknownResultKind = errors.New("unknown result kind")
	ErrMissingType       = errors.New("missing type")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrUnknownDecoding   = errors.New("unknown decoding")
	ErrInvalidSelector   = errors.New("invalid selector")
)

// TypeRecord is the serialised form of a Type. The same record is used for
// JSON, YAML and CBOR.
type TypeRecord struct {
	TypeClass        TypeClass          `json:"typeClass" yaml:"typeClass"`
	Bits             int                `json:"bits,omitempty" yaml:"bits,omitempty"`
	Kind             Size               `json:"kind,omitempty" yaml:"kind,omitempty"`
	Length           uint64             `json:"length,omitempty" yaml:"length,omitempty"`
	Location         Location           `json:"location,omitempty" yaml:"location,omitempty"`
	Payable          bool               `json:"payable,omitempty" yaml:"payable,omitempty"`
	ID               string             `json:"id,omitempty" yaml:"id,omitempty"`
	TypeName         string             `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	DefiningContract string             `json:"definingContractName,omitempty" yaml:"definingContractName,omitempty"`
	Visibility       Visibility         `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Mutability       string             `json:"mutability,omitempty" yaml:"mutability,omitempty"`
	Variable         string             `json:"variable,omitempty" yaml:"variable,omitempty"`
	Base             *TypeRecord        `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Key              *TypeRecord        `json:"keyType,omitempty" yaml:"keyType,omitempty"`
	Value            *TypeRecord        `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	Members          []MemberTypeRecord `json:"memberTypes,omitempty" yaml:"memberTypes,omitempty"`
	TypeHint         string             `json:"typeHint,omitempty" yaml:"typeHint,omitempty"`
}

type MemberTypeRecord struct {
	Name string      `json:"name" yaml:"name"`
	Type *TypeRecord `json:"type" yaml:"type"`
}

// DefinitionRecord is the serialised form of a Definition. Members is only
// set for structs and Options only for enums.
type DefinitionRecord struct {
	TypeClass        TypeClass          `json:"typeClass" yaml:"typeClass"`
	ID               string             `json:"id" yaml:"id"`
	TypeName         string             `json:"typeName" yaml:"typeName"`
	DefiningContract string             `json:"definingContractName,omitempty" yaml:"definingContractName,omitempty"`
	Members          []MemberTypeRecord `json:"memberTypes,omitempty" yaml:"memberTypes,omitempty"`
	Options          []string           `json:"options,omitempty" yaml:"options,omitempty"`
}

// ResultRecord is the serialised form of a Result.
type ResultRecord struct {
	Kind  ResultKind   `json:"kind"`
	Type  *TypeRecord  `json:"type,omitempty"`
	Value *ValueRecord `json:"value,omitempty"`
	Error *ErrorRecord `json:"error,omitempty"`
}

// ValueRecord is the serialised form of a Payload. Which fields are used
// depends on the class of the enclosing result's type. Integers are decimal
// strings.
type ValueRecord struct {
	Number                    string              `json:"number,omitempty"`
	Bool                      bool                `json:"bool,omitempty"`
	String                    string              `json:"string,omitempty"`
	Bytes                     hexutil.Bytes       `json:"bytes,omitempty"`
	Address                   *common.Address     `json:"address,omitempty"`
	RawAsHex                  string              `json:"rawAsHex,omitempty"`
	Class                     string              `json:"class,omitempty"`
	Selector                  hexutil.Bytes       `json:"selector,omitempty"`
	Name                      string              `json:"name,omitempty"`
	Context                   string              `json:"context,omitempty"`
	DeployedProgramCounter    uint64              `json:"deployedProgramCounter,omitempty"`
	ConstructorProgramCounter uint64              `json:"constructorProgramCounter,omitempty"`
	Members                   []NamedResultRecord `json:"members,omitempty"`
	Elements                  []*ResultRecord     `json:"elements,omitempty"`
	Entries                   []KeyValueRecord    `json:"entries,omitempty"`
	Reference                 int                 `json:"reference,omitempty"`
}

type NamedResultRecord struct {
	Name  string        `json:"name"`
	Value *ResultRecord `json:"value"`
}

type KeyValueRecord struct {
	Key   *ResultRecord `json:"key"`
	Value *ResultRecord `json:"value"`
}

// ErrorRecord is the serialised form of an ErrorInfo. Raw is a hex string for
// padding errors and a decimal string for the integer-carrying kinds.
type ErrorRecord struct {
	Kind     ErrorKind `json:"kind"`
	Raw      string    `json:"raw,omitempty"`
	ID       string    `json:"id,omitempty"`
	Location Location  `json:"location,omitempty"`
	Start    string    `json:"start,omitempty"`
	Length   string    `json:"length,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// ArgumentRecord is the serialised form of an Argument.
type ArgumentRecord struct {
	Name    string        `json:"name,omitempty"`
	Indexed bool          `json:"indexed,omitempty"`
	Value   *ResultRecord `json:"value"`
}

func NewTypeRecord(t Type) *TypeRecord {
	if t == nil {
		return nil
	}
	r := &TypeRecord{TypeClass: t.TypeClass(), TypeHint: t.TypeHint()}
	switch t := t.(type) {
	case *UintType:
		r.Bits = t.Bits
	case *IntType:
		r.Bits = t.Bits
	case *StringType:
		r.Location = t.Location
	case *BytesType:
		r.Kind, r.Length, r.Location = t.Kind, uint64(t.Length), t.Location
	case *AddressType:
		r.Payable = t.Payable
	case *ContractType:
		r.ID, r.TypeName, r.Payable, r.DefiningContract = t.ID, t.TypeName, t.Payable, t.DefiningContract
	case *FunctionType:
		r.Visibility, r.Mutability = t.Visibility, t.Mutability
	case *StructType:
		r.ID, r.TypeName, r.DefiningContract, r.Location = t.ID, t.TypeName, t.DefiningContract, t.Location
	case *TupleType:
		r.Members = newMemberTypeRecords(t.Members)
	case *EnumType:
		r.ID, r.TypeName, r.DefiningContract = t.ID, t.TypeName, t.DefiningContract
	case *ArrayType:
		r.Base, r.Kind, r.Length, r.Location = NewTypeRecord(t.Base), t.Kind, t.Length, t.Location
	case *MappingType:
		r.Key, r.Value, r.Location = NewTypeRecord(t.Key), NewTypeRecord(t.Value), t.Location
	case *MagicType:
		r.Variable = t.Variable
	}
	return r
}

func newMemberTypeRecords(members []NameTypePair) []MemberTypeRecord {
	if members == nil {
		return nil
	}
	records := make([]MemberTypeRecord, len(members))
	for i, m := range members {
		records[i] = MemberTypeRecord{Name: m.Name, Type: NewTypeRecord(m.Type)}
	}
	return records
}

// Type converts the record back into a Type.
func (r *TypeRecord) Type() (Type, error) {
	if r == nil {
		return nil, ErrMissingType
	}
	hint := r.TypeHint
	switch r.TypeClass {
	case ClassUint:
		return &UintType{Bits: r.Bits, Hint: hint}, nil
	case ClassInt:
		return &IntType{Bits: r.Bits, Hint: hint}, nil
	case ClassBool:
		return &BoolType{Hint: hint}, nil
	case ClassString:
		return &StringType{Location: r.Location, Hint: hint}, nil
	case ClassBytes:
		return &BytesType{Kind: r.Kind, Length: int(r.Length), Location: r.Location, Hint: hint}, nil
	case ClassAddress:
		return &AddressType{Payable: r.Payable, Hint: hint}, nil
	case ClassContract:
		return &ContractType{
			ID:               r.ID,
			TypeName:         r.TypeName,
			Payable:          r.Payable,
			DefiningContract: r.DefiningContract,
			Hint:             hint,
		}, nil
	case ClassFunction:
		return &FunctionType{Visibility: r.Visibility, Mutability: r.Mutability, Hint: hint}, nil
	case ClassStruct:
		return &StructType{
			ID:               r.ID,
			TypeName:         r.TypeName,
			DefiningContract: r.DefiningContract,
			Location:         r.Location,
			Hint:             hint,
		}, nil
	case ClassTuple:
		members, err := memberTypes(r.Members)
		if err != nil {
			return nil, err
		}
		return &TupleType{Members: members, Hint: hint}, nil
	case ClassEnum:
		return &EnumType{ID: r.ID, TypeName: r.TypeName, DefiningContract: r.DefiningContract, Hint: hint}, nil
	case ClassArray:
		base, err := r.Base.Type()
		if err != nil {
			return nil, fmt.Errorf("array base type: %w", err)
		}
		return &ArrayType{Base: base, Kind: r.Kind, Length: r.Length, Location: r.Location, Hint: hint}, nil
	case ClassMapping:
		key, err := r.Key.Type()
		if err != nil {
			return nil, fmt.Errorf("mapping key type: %w", err)
		}
		value, err := r.Value.Type()
		if err != nil {
			return nil, fmt.Errorf("mapping value type: %w", err)
		}
		return &MappingType{Key: key, Value: value, Location: r.Location, Hint: hint}, nil
	case ClassMagic:
		return &MagicType{Variable: r.Variable, Hint: hint}, nil
	case ClassNotApplicable:
		return NotApplicable{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeClass, r.TypeClass)
	}
}

func memberTypes(records []MemberTypeRecord) ([]NameTypePair, error) {
	if records == nil {
		return nil, nil
	}
	members := make([]NameTypePair, len(records))
	for i, m := range records {
		t, err := m.Type.Type()
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Name, err)
		}
		members[i] = NameTypePair{Name: m.Name, Type: t}
	}
	return members, nil
}

func NewDefinitionRecord(d Definition) *DefinitionRecord {
	switch d := d.(type) {
	case *StructDefinition:
		return &DefinitionRecord{
			TypeClass:        ClassStruct,
			ID:               d.ID,
			TypeName:         d.TypeName,
			DefiningContract: d.DefiningContract,
			Members:          newMemberTypeRecords(d.Members),
		}
	case *EnumDefinition:
		return &DefinitionRecord{
			TypeClass:        ClassEnum,
			ID:               d.ID,
			TypeName:         d.TypeName,
			DefiningContract: d.DefiningContract,
			Options:          d.Options,
		}
	default:
		return nil
	}
}

// Definition converts the record back into a Definition.
func (r *DefinitionRecord) Definition() (Definition, error) {
	switch r.TypeClass {
	case ClassStruct:
		members, err := memberTypes(r.Members)
		if err != nil {
			return nil, fmt.Errorf("struct %s: %w", r.ID, err)
		}
		return &StructDefinition{ID: r.ID, TypeName: r.TypeName, DefiningContract: r.DefiningContract, Members: members}, nil
	case ClassEnum:
		return &EnumDefinition{ID: r.ID, TypeName: r.TypeName, DefiningContract: r.DefiningContract, Options: r.Options}, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a user-defined type", ErrUnknownTypeClass, r.TypeClass)
	}
}

func NewResultRecord(r Result) *ResultRecord {
	switch r := r.(type) {
	case *Value:
		return &ResultRecord{Kind: KindValue, Type: NewTypeRecord(r.Type), Value: newValueRecord(r.Payload)}
	case *Error:
		return &ResultRecord{Kind: KindError, Type: NewTypeRecord(r.Type), Error: newErrorRecord(r.Info)}
	default:
		return &ResultRecord{Kind: KindNotApplicable}
	}
}

func newValueRecord(p Payload) *ValueRecord {
	v := new(ValueRecord)
	switch p := p.(type) {
	case *UintPayload:
		v.Number = p.Value.String()
	case *IntPayload:
		v.Number = p.Value.String()
	case *BoolPayload:
		v.Bool = p.Value
	case *StringPayload:
		v.String = p.Value
	case *BytesPayload:
		v.Bytes = p.Value
	case *AddressPayload:
		v.Address, v.RawAsHex = &p.Address, p.RawAsHex
	case *ContractPayload:
		v.Address, v.RawAsHex, v.Class = &p.Address, p.RawAddress, p.Class
	case *ExternalFunctionPayload:
		v.Address, v.RawAsHex, v.Class = &p.Contract.Address, p.Contract.RawAddress, p.Contract.Class
		v.Selector, v.Name = p.Selector[:], p.Name
	case *InternalFunctionPayload:
		v.Context, v.Name = p.Context, p.Name
		v.DeployedProgramCounter, v.ConstructorProgramCounter = p.DeployedProgramCounter, p.ConstructorProgramCounter
	case *StructPayload:
		v.Members, v.Reference = newNamedResultRecords(p.Members), p.Reference
	case *TuplePayload:
		v.Members = newNamedResultRecords(p.Members)
	case *EnumPayload:
		v.Number, v.Name = p.Numeric.String(), p.Name
	case *ArrayPayload:
		v.Reference = p.Reference
		v.Elements = make([]*ResultRecord, len(p.Elements))
		for i, e := range p.Elements {
			v.Elements[i] = NewResultRecord(e)
		}
	case *MappingPayload:
		v.Entries = make([]KeyValueRecord, len(p.Entries))
		for i, e := range p.Entries {
			v.Entries[i] = KeyValueRecord{Key: NewResultRecord(e.Key), Value: NewResultRecord(e.Value)}
		}
	case *MagicPayload:
		v.Members = newNamedResultRecords(p.Fields)
	}
	return v
}

func newNamedResultRecords(members []NamedResult) []NamedResultRecord {
	if members == nil {
		return nil
	}
	records := make([]NamedResultRecord, len(members))
	for i, m := range members {
		records[i] = NamedResultRecord{Name: m.Name, Value: NewResultRecord(m.Value)}
	}
	return records
}

func newErrorRecord(info ErrorInfo) *ErrorRecord {
	switch info := info.(type) {
	case *PaddingError:
		return &ErrorRecord{Kind: info.Kind, Raw: info.Raw}
	case *EnumRawError:
		return &ErrorRecord{Kind: info.Kind, ID: info.ID, Raw: bigString(info.Raw)}
	case *BoolRangeError:
		return &ErrorRecord{Kind: BoolOutOfRangeError, Raw: bigString(info.Raw)}
	case *GenericError:
		return &ErrorRecord{
			Kind:     info.Kind,
			ID:       info.ID,
			Location: info.Location,
			Start:    bigString(info.Start),
			Length:   bigString(info.Length),
			Message:  info.Message,
		}
	default:
		return nil
	}
}

// Result converts the record back into a Result.
func (r *ResultRecord) Result() (Result, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty result", ErrUnknownResultKind)
	}
	if r.Kind == KindNotApplicable {
		return NotApplicable{}, nil
	}
	t, err := r.Type.Type()
	if err != nil {
		return nil, err
	}
	switch r.Kind {
	case KindValue:
		if r.Value == nil {
			return nil, fmt.Errorf("value result of type %s has no value", TypeString(t))
		}
		payload, err := r.Value.payload(t)
		if err != nil {
			return nil, err
		}
		return &Value{Type: t, Payload: payload}, nil
	case KindError:
		if r.Error == nil {
			return nil, fmt.Errorf("error result of type %s has no error", TypeString(t))
		}
		info, err := r.Error.info()
		if err != nil {
			return nil, err
		}
		return &Error{Type: t, Info: info}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResultKind, r.Kind)
	}
}

func (v *ValueRecord) payload(t Type) (Payload, error) {
	switch t := t.(type) {
	case *UintType:
		n, err := parseBig(v.Number)
		if err != nil {
			return nil, err
		}
		return &UintPayload{Value: n}, nil
	case *IntType:
		n, err := parseBig(v.Number)
		if err != nil {
			return nil, err
		}
		return &IntPayload{Value: n}, nil
	case *BoolType:
		return &BoolPayload{Value: v.Bool}, nil
	case *StringType:
		return &StringPayload{Value: v.String}, nil
	case *BytesType:
		return &BytesPayload{Value: v.Bytes}, nil
	case *AddressType:
		return &AddressPayload{Address: v.address(), RawAsHex: v.RawAsHex}, nil
	case *ContractType:
		return &ContractPayload{Address: v.address(), RawAddress: v.RawAsHex, Class: v.Class}, nil
	case *FunctionType:
		if t.Visibility == Internal {
			return &InternalFunctionPayload{
				Context:                   v.Context,
				DeployedProgramCounter:    v.DeployedProgramCounter,
				ConstructorProgramCounter: v.ConstructorProgramCounter,
				Name:                      v.Name,
			}, nil
		}
		p := &ExternalFunctionPayload{
			Contract: ContractPayload{Address: v.address(), RawAddress: v.RawAsHex, Class: v.Class},
			Name:     v.Name,
		}
		copy(p.Selector[:], v.Selector)
		return p, nil
	case *StructType:
		members, err := namedResults(v.Members)
		if err != nil {
			return nil, err
		}
		return &StructPayload{Members: members, Reference: v.Reference}, nil
	case *TupleType:
		members, err := namedResults(v.Members)
		if err != nil {
			return nil, err
		}
		return &TuplePayload{Members: members}, nil
	case *EnumType:
		n, err := parseBig(v.Number)
		if err != nil {
			return nil, err
		}
		return &EnumPayload{Numeric: n, Name: v.Name}, nil
	case *ArrayType:
		elements := make([]Result, len(v.Elements))
		for i, e := range v.Elements {
			element, err := e.Result()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elements[i] = element
		}
		return &ArrayPayload{Elements: elements, Reference: v.Reference}, nil
	case *MappingType:
		entries := make([]KeyValuePair, len(v.Entries))
		for i, e := range v.Entries {
			key, err := e.Key.Result()
			if err != nil {
				return nil, fmt.Errorf("entry %d key: %w", i, err)
			}
			value, err := e.Value.Result()
			if err != nil {
				return nil, fmt.Errorf("entry %d value: %w", i, err)
			}
			entries[i] = KeyValuePair{Key: key, Value: value}
		}
		return &MappingPayload{Entries: entries}, nil
	case *MagicType:
		fields, err := namedResults(v.Members)
		if err != nil {
			return nil, err
		}
		return &MagicPayload{Fields: fields}, nil
	default:
		return nil, fmt.Errorf("%w: %q cannot carry a value", ErrUnknownTypeClass, t.TypeClass())
	}
}

func (v *ValueRecord) address() common.Address {
	if v.Address == nil {
		return common.Address{}
	}
	return *v.Address
}

func namedResults(records []NamedResultRecord) ([]NamedResult, error) {
	if records == nil {
		return nil, nil
	}
	members := make([]NamedResult, len(records))
	for i, m := range records {
		value, err := m.Value.Result()
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Name, err)
		}
		members[i] = NamedResult{Name: m.Name, Value: value}
	}
	return members, nil
}

func (e *ErrorRecord) info() (ErrorInfo, error) {
	switch e.Kind {
	case UintPaddingError, IntPaddingError, BoolPaddingError, BytesPaddingError, AddressPaddingError,
		ContractPaddingError, EnumPaddingError, FunctionExternalNonStackPaddingError:
		return &PaddingError{Kind: e.Kind, Raw: e.Raw}, nil
	case EnumOutOfRangeError, EnumNotFoundDecodingError:
		raw, err := parseBig(e.Raw)
		if err != nil {
			return nil, err
		}
		return &EnumRawError{Kind: e.Kind, ID: e.ID, Raw: raw}, nil
	case BoolOutOfRangeError:
		raw, err := parseBig(e.Raw)
		if err != nil {
			return nil, err
		}
		return &BoolRangeError{Raw: raw}, nil
	default:
		info := &GenericError{Kind: e.Kind, ID: e.ID, Location: e.Location, Message: e.Message}
		var err error
		if e.Start != "" {
			if info.Start, err = parseBig(e.Start); err != nil {
				return nil, err
			}
		}
		if e.Length != "" {
			if info.Length, err = parseBig(e.Length); err != nil {
				return nil, err
			}
		}
		return info, nil
	}
}

func NewArgumentRecords(args []Argument) []ArgumentRecord {
	records := make([]ArgumentRecord, len(args))
	for i, a := range args {
		records[i] = ArgumentRecord{Name: a.Name, Indexed: a.Indexed, Value: NewResultRecord(a.Value)}
	}
	return records
}

func Arguments(records []ArgumentRecord) ([]Argument, error) {
	args := make([]Argument, len(records))
	for i, r := range records {
		value, err := r.Value.Result()
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, r.Name, err)
		}
		args[i] = Argument{Name: r.Name, Indexed: r.Indexed, Value: value}
	}
	return args, nil
}

// DecodingType names which kind of data a DecodingRecord decodes.
type DecodingType string

const (
	DecodingCalldata   DecodingType = "calldata"
	DecodingLog        DecodingType = "log"
	DecodingReturndata DecodingType = "returndata"
)

// DecodingRecord is the serialised form of a CalldataDecoding, LogDecoding or
// ReturndataDecoding. Kind holds the kind of the decoding named by Decoding. A
// missing Mode reads as ModeFull.
type DecodingRecord struct {
	Decoding  DecodingType     `json:"decoding"`
	Kind      string           `json:"kind"`
	Mode      DecodingMode     `json:"mode,omitempty"`
	Class     string           `json:"class,omitempty"`
	Name      string           `json:"name,omitempty"`
	Selector  hexutil.Bytes    `json:"selector,omitempty"`
	Arguments []ArgumentRecord `json:"arguments,omitempty"`
	Data      hexutil.Bytes    `json:"data,omitempty"`
}

func NewCalldataRecord(d *CalldataDecoding) *DecodingRecord {
	r := &DecodingRecord{
		Decoding:  DecodingCalldata,
		Kind:      string(d.Kind),
		Mode:      d.Mode,
		Class:     d.Class,
		Name:      d.Name,
		Arguments: argumentRecords(d.Arguments),
		Data:      d.Data,
	}
	if d.Kind == CalldataFunction {
		r.Selector = d.Selector[:]
	}
	return r
}

func NewLogRecord(d *LogDecoding) *DecodingRecord {
	r := &DecodingRecord{
		Decoding:  DecodingLog,
		Kind:      string(d.Kind),
		Mode:      d.Mode,
		Class:     d.Class,
		Name:      d.Name,
		Arguments: argumentRecords(d.Arguments),
	}
	if d.Kind == LogEvent {
		r.Selector = d.Selector[:]
	}
	return r
}

func NewReturndataRecord(d *ReturndataDecoding) *DecodingRecord {
	return &DecodingRecord{
		Decoding:  DecodingReturndata,
		Kind:      string(d.Kind),
		Mode:      d.Mode,
		Name:      d.Name,
		Arguments: argumentRecords(d.Arguments),
		Data:      d.Data,
	}
}

func (r *DecodingRecord) Calldata() (*CalldataDecoding, error) {
	if r.Decoding != DecodingCalldata {
		return nil, fmt.Errorf("%w: %q is not calldata", ErrUnknownDecoding, r.Decoding)
	}
	kind := CalldataKind(r.Kind)
	switch kind {
	case CalldataFunction, CalldataConstructor, CalldataMessage, CalldataUnknown, CalldataCreate:
	default:
		return nil, fmt.Errorf("%w: calldata kind %q", ErrUnknownDecoding, r.Kind)
	}
	args, err := r.arguments()
	if err != nil {
		return nil, err
	}
	d := &CalldataDecoding{Kind: kind, Mode: r.mode(), Class: r.Class, Name: r.Name, Arguments: args, Data: r.Data}
	if err = copySelector(d.Selector[:], r.Selector); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DecodingRecord) Log() (*LogDecoding, error) {
	if r.Decoding != DecodingLog {
		return nil, fmt.Errorf("%w: %q is not a log", ErrUnknownDecoding, r.Decoding)
	}
	kind := LogKind(r.Kind)
	if kind != LogEvent && kind != LogAnonymous {
		return nil, fmt.Errorf("%w: log kind %q", ErrUnknownDecoding, r.Kind)
	}
	args, err := r.arguments()
	if err != nil {
		return nil, err
	}
	d := &LogDecoding{Kind: kind, Mode: r.mode(), Class: r.Class, Name: r.Name, Arguments: args}
	if err = copySelector(d.Selector[:], r.Selector); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DecodingRecord) Returndata() (*ReturndataDecoding, error) {
	if r.Decoding != DecodingReturndata {
		return nil, fmt.Errorf("%w: %q is not returndata", ErrUnknownDecoding, r.Decoding)
	}
	kind := ReturndataKind(r.Kind)
	switch kind {
	case ReturnValues, ReturnRevert, ReturnSelfdestruct, ReturnFailure, ReturnBytecode, ReturnMessage:
	default:
		return nil, fmt.Errorf("%w: returndata kind %q", ErrUnknownDecoding, r.Kind)
	}
	args, err := r.arguments()
	if err != nil {
		return nil, err
	}
	return &ReturndataDecoding{Kind: kind, Mode: r.mode(), Name: r.Name, Arguments: args, Data: r.Data}, nil
}

func (r *DecodingRecord) mode() DecodingMode {
	if r.Mode == "" {
		return ModeFull
	}
	return r.Mode
}

func (r *DecodingRecord) arguments() ([]Argument, error) {
	if r.Arguments == nil {
		return nil, nil
	}
	return Arguments(r.Arguments)
}

func argumentRecords(args []Argument) []ArgumentRecord {
	if args == nil {
		return nil
	}
	return NewArgumentRecords(args)
}

// copySelector fills dst from a record selector. An empty selector leaves dst
// zeroed.
func copySelector(dst, selector []byte) error {
	if len(selector) == 0 {
		return nil
	}
	if len(selector) != len(dst) {
		return fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSelector, len(selector), len(dst))
	}
	copy(dst, selector)
	return nil
}

func MarshalType(t Type) ([]byte, error) {
	return json.Marshal(NewTypeRecord(t))
}

func UnmarshalType(data []byte) (Type, error) {
	r := new(TypeRecord)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r.Type()
}

func MarshalResult(r Result) ([]byte, error) {
	return json.Marshal(NewResultRecord(r))
}

func UnmarshalResult(data []byte) (Result, error) {
	r := new(ResultRecord)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r.Result()
}

func MarshalDefinition(d Definition) ([]byte, error) {
	return json.Marshal(NewDefinitionRecord(d))
}

func UnmarshalDefinition(data []byte) (Definition, error) {
	r := new(DefinitionRecord)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r.Definition()
}

func bigString(n *big.Int) string {
	if n == nil {
		return ""
	}
	return n.String()
}

// parseBig accepts decimal and 0x-prefixed hexadecimal integers.
func parseBig(s string) (*big.Int, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	} else if strings.HasPrefix(s, "-0x") {
		base, digits = 16, "-"+s[3:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

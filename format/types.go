// Package format holds the decoder's model of contract types, decoded results
// and user-defined type definitions.
package format

// TypeClass names the variant of a Type.
type TypeClass string

const (
	ClassUint          TypeClass = "uint"
	ClassInt           TypeClass = "int"
	ClassBool          TypeClass = "bool"
	ClassString        TypeClass = "string"
	ClassBytes         TypeClass = "bytes"
	ClassAddress       TypeClass = "address"
	ClassContract      TypeClass = "contract"
	ClassFunction      TypeClass = "function"
	ClassStruct        TypeClass = "struct"
	ClassTuple         TypeClass = "tuple"
	ClassEnum          TypeClass = "enum"
	ClassArray         TypeClass = "array"
	ClassMapping       TypeClass = "mapping"
	ClassMagic         TypeClass = "magic"
	ClassNotApplicable TypeClass = "notApplicable"
)

// Type is a closed set of type descriptions. Only the types declared in this
// package implement it.
type Type interface {
	TypeClass() TypeClass
	// TypeHint is the display string of the type this one was normalized from,
	// empty for types that were never normalized.
	TypeHint() string
	isType()
}

type Visibility string

const (
	External Visibility = "external"
	Internal Visibility = "internal"
)

type Location string

const (
	Memory   Location = "memory"
	Storage  Location = "storage"
	Calldata Location = "calldata"
)

// Size distinguishes statically sized bytes and arrays from dynamic ones.
type Size string

const (
	Static  Size = "static"
	Dynamic Size = "dynamic"
)

type UintType struct {
	Bits int
	Hint string
}

type IntType struct {
	Bits int
	Hint string
}

type BoolType struct {
	Hint string
}

type StringType struct {
	Location Location
	Hint     string
}

type BytesType struct {
	Kind Size
	// Length is only meaningful for static bytes.
	Length   int
	Location Location
	Hint     string
}

type AddressType struct {
	Payable bool
	Hint    string
}

// ContractType is a contract-typed variable. Its ID refers to the contract
// definition, which is only used for display.
type ContractType struct {
	ID               string
	TypeName         string
	Payable          bool
	DefiningContract string
	Hint             string
}

type FunctionType struct {
	Visibility Visibility
	Mutability string
	Hint       string
}

// StructType is a reference to a struct definition held by a registry.
type StructType struct {
	ID               string
	TypeName         string
	DefiningContract string
	Location         Location
	Hint             string
}

// NameTypePair is a named member of a struct definition or tuple.
type NameTypePair struct {
	Name string `validate:"required"`
	Type Type   `validate:"required"`
}

type TupleType struct {
	Members []NameTypePair
	Hint    string
}

// EnumType is a reference to an enum definition held by a registry.
type EnumType struct {
	ID               string
	TypeName         string
	DefiningContract string
	Hint             string
}

type ArrayType struct {
	Base Type
	Kind Size
	// Length is only meaningful for static arrays.
	Length   uint64
	Location Location
	Hint     string
}

type MappingType struct {
	Key      Type
	Value    Type
	Location Location
	Hint     string
}

// MagicType is one of the compiler-provided globals (msg, tx, block, ...).
type MagicType struct {
	Variable string
	Hint     string
}

// NotApplicable is the outcome for types and results without an ABI
// representation. It is neither a value nor an error.
type NotApplicable struct{}

func (*UintType) TypeClass() TypeClass     { return ClassUint }
func (*IntType) TypeClass() TypeClass      { return ClassInt }
func (*BoolType) TypeClass() TypeClass     { return ClassBool }
func (*StringType) TypeClass() TypeClass   { return ClassString }
func (*BytesType) TypeClass() TypeClass    { return ClassBytes }
func (*AddressType) TypeClass() TypeClass  { return ClassAddress }
func (*ContractType) TypeClass() TypeClass { return ClassContract }
func (*FunctionType) TypeClass() TypeClass { return ClassFunction }
func (*StructType) TypeClass() TypeClass   { return ClassStruct }
func (*TupleType) TypeClass() TypeClass    { return ClassTuple }
func (*EnumType) TypeClass() TypeClass     { return ClassEnum }
func (*ArrayType) TypeClass() TypeClass    { return ClassArray }
func (*MappingType) TypeClass() TypeClass  { return ClassMapping }
func (*MagicType) TypeClass() TypeClass    { return ClassMagic }
func (NotApplicable) TypeClass() TypeClass { return ClassNotApplicable }

func (t *UintType) TypeHint() string     { return t.Hint }
func (t *IntType) TypeHint() string      { return t.Hint }
func (t *BoolType) TypeHint() string     { return t.Hint }
func (t *StringType) TypeHint() string   { return t.Hint }
func (t *BytesType) TypeHint() string    { return t.Hint }
func (t *AddressType) TypeHint() string  { return t.Hint }
func (t *ContractType) TypeHint() string { return t.Hint }
func (t *FunctionType) TypeHint() string { return t.Hint }
func (t *StructType) TypeHint() string   { return t.Hint }
func (t *TupleType) TypeHint() string    { return t.Hint }
func (t *EnumType) TypeHint() string     { return t.Hint }
func (t *ArrayType) TypeHint() string    { return t.Hint }
func (t *MappingType) TypeHint() string  { return t.Hint }
func (t *MagicType) TypeHint() string    { return t.Hint }
func (NotApplicable) TypeHint() string   { return "" }

func (*UintType) isType()     {}
func (*IntType) isType()      {}
func (*BoolType) isType()     {}
func (*StringType) isType()   {}
func (*BytesType) isType()    {}
func (*AddressType) isType()  {}
func (*ContractType) isType() {}
func (*FunctionType) isType() {}
func (*StructType) isType()   {}
func (*TupleType) isType()    {}
func (*EnumType) isType()     {}
func (*ArrayType) isType()    {}
func (*MappingType) isType()  {}
func (*MagicType) isType()    {}
func (NotApplicable) isType() {}

// IsNotApplicable reports whether t is the NotApplicable sentinel.
func IsNotApplicable(t Type) bool {
	_, ok := t.(NotApplicable)
	return ok
}

package format

// DecodingMode records whether a decoding uses the full decoder type system or
// only what the ABI can express.
type DecodingMode string

const (
	ModeFull DecodingMode = "full"
	ModeABI  DecodingMode = "abi"
)

// Argument is a decoded function, event or return argument.
type Argument struct {
	Name    string
	Indexed bool
	Value   Result
}

type CalldataKind string

const (
	CalldataFunction    CalldataKind = "function"
	CalldataConstructor CalldataKind = "constructor"
	CalldataMessage     CalldataKind = "message"
	CalldataUnknown     CalldataKind = "unknown"
	CalldataCreate      CalldataKind = "create"
)

// CalldataDecoding is the decoding of a transaction's input.
type CalldataDecoding struct {
	Kind      CalldataKind
	Mode      DecodingMode
	Class     string
	Name      string
	Selector  [4]byte
	Arguments []Argument
	Data      []byte
}

type LogKind string

const (
	LogEvent     LogKind = "event"
	LogAnonymous LogKind = "anonymous"
)

// LogDecoding is one possible decoding of an event log.
type LogDecoding struct {
	Kind      LogKind
	Mode      DecodingMode
	Class     string
	Name      string
	Selector  [32]byte
	Arguments []Argument
}

type ReturndataKind string

const (
	ReturnValues       ReturndataKind = "return"
	ReturnRevert       ReturndataKind = "revert"
	ReturnSelfdestruct ReturndataKind = "selfdestruct"
	ReturnFailure      ReturndataKind = "failure"
	ReturnBytecode     ReturndataKind = "bytecode"
	ReturnMessage      ReturndataKind = "returnmessage"
)

// ReturndataDecoding is one possible decoding of a call's return data.
// Arguments is only populated for return and revert decodings.
type ReturndataDecoding struct {
	Kind      ReturndataKind
	Mode      DecodingMode
	Name      string
	Arguments []Argument
	Data      []byte
}

// Package encoder is the CBOR codec used to persist type definitions.
package encoder

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
)

const (
	// Definitions nest one level per member, array base and mapping key or
	// value, so the default limit of 32 is too low for real contracts.
	maxNestedLevels  = 1024
	maxArrayElements = 1 << 20
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

var initialiseEncoder sync.Once

func initEncAndDecModes() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  maxNestedLevels,
		MaxArrayElements: maxArrayElements,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal returns the canonical encoding of v
func Marshal(v any) ([]byte, error) {
	initialiseEncoder.Do(initEncAndDecModes)
	return encMode.Marshal(v)
}

// Unmarshal decodes b into v
func Unmarshal(b []byte, v any) error {
	initialiseEncoder.Do(initEncAndDecModes)
	return decMode.Unmarshal(b, v)
}

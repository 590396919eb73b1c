package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/utils"
	"gopkg.in/yaml.v3"
)

// ReadFile loads a list of definition records from a YAML or JSON file. The
// format is chosen by extension; anything other than .json is read as YAML.
func ReadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []format.DefinitionRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &records)
	} else {
		err = yaml.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	defs, err := utils.MapErr(records, func(r format.DefinitionRecord) (format.Definition, error) {
		return r.Definition()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewMap(defs...), nil
}

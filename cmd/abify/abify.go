package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/NethermindEth/abify/abify"
	"github.com/NethermindEth/abify/adapters/ethabi"
	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
	"github.com/NethermindEth/abify/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mitchellh/mapstructure"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
)

var Version string

const (
	configF   = "config"
	logLevelF = "log-level"
	colourF   = "colour"
	registryF = "registry"
	dbPathF   = "db-path"
	workersF  = "workers"
	metricsF  = "metrics"
	packF     = "pack"

	defaultConfig   = ""
	defaultLogLevel = utils.WARN
	defaultColour   = true
	defaultRegistry = ""
	defaultDBPath   = ""
	defaultWorkers  = 0
	defaultMetrics  = false
	defaultPack     = false

	configFlagUsage   = "The yaml configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	colourUsage       = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
	registryUsage     = "YAML or JSON file with the struct and enum definitions referenced by the inputs."
	dbPathUsage       = "Location of the definition database. Definitions from --registry are stored in it."
	workersUsage      = "Number of inputs normalized concurrently. Defaults to GOMAXPROCS."
	metricsUsage      = "Prints registry and normalization metrics to stderr when done."
	packUsage         = "Also ABI-encodes the normalized arguments."
)

// Config is the resolved configuration of a run, from flags and the config
// file.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level"`
	Colour   bool           `mapstructure:"colour"`
	Registry string         `mapstructure:"registry"`
	DBPath   string         `mapstructure:"db-path"`
	Workers  int            `mapstructure:"workers"`
	Metrics  bool           `mapstructure:"metrics"`
	Pack     bool           `mapstructure:"pack"`
}

// Output is written once per input, in input order. Decoding is set for
// calldata, log and returndata inputs, Arguments for bare argument lists.
type Output struct {
	Input     string                  `json:"input"`
	Decoding  *format.DecodingRecord  `json:"decoding,omitempty"`
	Arguments []format.ArgumentRecord `json:"arguments,omitempty"`
	Encoded   hexutil.Bytes           `json:"encoded,omitempty"`
}

func NewCmd(config *Config) *cobra.Command {
	var cfgFile string

	abifyCmd := &cobra.Command{
		Use:     "abify [flags] [files...]",
		Short:   "Normalizes decoded contract arguments into their ABI form.",
		Long:    "Reads JSON calldata, log or returndata decodings, or lists of decoded arguments, from files or stdin.",
		Version: Version,
		Args:    cobra.ArbitraryArgs,
	}

	abifyCmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	abifyCmd.Flags().Var(utils.NewLogLevel(defaultLogLevel), logLevelF, logLevelFlagUsage)
	abifyCmd.Flags().Bool(colourF, defaultColour, colourUsage)
	abifyCmd.Flags().String(registryF, defaultRegistry, registryUsage)
	abifyCmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	abifyCmd.Flags().Int(workersF, defaultWorkers, workersUsage)
	abifyCmd.Flags().Bool(metricsF, defaultMetrics, metricsUsage)
	abifyCmd.Flags().Bool(packF, defaultPack, packUsage)

	abifyCmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		return v.Unmarshal(config, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()))
	}

	abifyCmd.RunE = func(cmd *cobra.Command, args []string) error {
		log, err := utils.NewZapLogger(&config.LogLevel, config.Colour)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		undo, err := maxprocs.Set(maxprocs.Logger(log.Debugf))
		if err != nil {
			log.Warnw("Failed to set GOMAXPROCS", "err", err)
		}
		defer undo()

		return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, config, log)
	}

	abifyCmd.AddCommand(DBCmd(defaultDBPath))

	return abifyCmd
}

func run(stdin io.Reader, stdout, stderr io.Writer, inputs []string, config *Config, log utils.SimpleLogger) error {
	defs, err := loadRegistry(config, log)
	if err != nil {
		return err
	}
	log.Infow("Loaded user-defined types", "count", defs.Len())

	m := newMetrics()
	reg := &registry.Observed{Registry: defs, Listener: m.registryListener()}

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	// stdin can only be read once, however often "-" is given.
	var stdinData []byte
	if slices.Contains(inputs, "-") {
		if stdinData, err = io.ReadAll(stdin); err != nil {
			return err
		}
	}

	outputs := make([]*Output, len(inputs))
	numWorkers := config.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	workers := pool.New().WithErrors().WithMaxGoroutines(numWorkers)
	for i, input := range inputs {
		i, input := i, input
		workers.Go(func() error {
			output, err := normalizeInput(stdinData, input, reg, config.Pack, m)
			if err != nil {
				m.failed.Inc()
				log.Errorw("Failed to normalize input", "input", input, "err", err)
				return fmt.Errorf("%s: %w", input, err)
			}
			log.Debugw("Normalized input", "input", input)
			outputs[i] = output
			return nil
		})
	}
	if err = workers.Wait(); err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	for _, output := range outputs {
		if err = encoder.Encode(output); err != nil {
			return err
		}
	}

	if config.Metrics {
		return m.write(stderr)
	}
	return nil
}

// loadRegistry reads definitions from the registry file and the database. If
// both are configured the file's definitions are validated together with the
// stored ones and only then stored.
func loadRegistry(config *Config, log utils.SimpleLogger) (*registry.Map, error) {
	file := registry.NewMap()
	if config.Registry != "" {
		var err error
		if file, err = registry.ReadFile(config.Registry); err != nil {
			return nil, err
		}
	}
	if config.DBPath == "" {
		if err := registry.Validate(file); err != nil {
			return nil, err
		}
		return file, nil
	}

	store, err := registry.Open(config.DBPath, log)
	if err != nil {
		return nil, err
	}
	defs, err := store.Load()
	if err != nil {
		return nil, utils.RunAndWrapOnError(store.Close, err)
	}
	defs.Add(file.Definitions()...)
	if err = registry.Validate(defs); err != nil {
		return nil, utils.RunAndWrapOnError(store.Close, err)
	}
	if err = store.Put(file.Definitions()...); err != nil {
		return nil, utils.RunAndWrapOnError(store.Close, err)
	}
	return defs, store.Close()
}

func normalizeInput(stdinData []byte, input string, reg registry.Registry, pack bool, m *metrics) (*Output, error) {
	data := stdinData
	if input != "-" {
		var err error
		if data, err = os.ReadFile(input); err != nil {
			return nil, err
		}
	}

	output := &Output{Input: input}
	var normalized []format.Argument
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var records []format.ArgumentRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
		args, err := format.Arguments(records)
		if err != nil {
			return nil, err
		}
		if normalized, err = abify.NormalizeArguments(args, reg); err != nil {
			return nil, err
		}
		output.Arguments = format.NewArgumentRecords(normalized)
	} else {
		record := new(format.DecodingRecord)
		if err := json.Unmarshal(data, record); err != nil {
			return nil, err
		}
		var err error
		if output.Decoding, normalized, err = normalizeDecoding(record, reg); err != nil {
			return nil, err
		}
	}

	for _, arg := range normalized {
		m.results.WithLabelValues(string(arg.Value.ResultKind())).Inc()
	}
	if pack {
		var err error
		if output.Encoded, err = ethabi.Pack(normalized); err != nil {
			return nil, err
		}
	}
	return output, nil
}

// normalizeDecoding returns the ABI form of record and its arguments.
func normalizeDecoding(record *format.DecodingRecord, reg registry.Registry) (*format.DecodingRecord,
	[]format.Argument, error,
) {
	switch record.Decoding {
	case format.DecodingCalldata:
		d, err := record.Calldata()
		if err != nil {
			return nil, nil, err
		}
		if d, err = abify.NormalizeCalldata(d, reg); err != nil {
			return nil, nil, err
		}
		return format.NewCalldataRecord(d), d.Arguments, nil
	case format.DecodingLog:
		d, err := record.Log()
		if err != nil {
			return nil, nil, err
		}
		if d, err = abify.NormalizeLog(d, reg); err != nil {
			return nil, nil, err
		}
		return format.NewLogRecord(d), d.Arguments, nil
	case format.DecodingReturndata:
		d, err := record.Returndata()
		if err != nil {
			return nil, nil, err
		}
		if d, err = abify.NormalizeReturndata(d, reg); err != nil {
			return nil, nil, err
		}
		return format.NewReturndataRecord(d), d.Arguments, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", format.ErrUnknownDecoding, record.Decoding)
	}
}

package registry

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/abify/encoder"
	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/utils"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var ErrNotFound = errors.New("definition not found")

// definitionPrefix namespaces definition keys in the database.
var definitionPrefix = []byte("udt/")

// Store persists definitions in a pebble database. It is a Registry itself,
// but lookups go to disk; use Load to get an in-memory Map for normalization.
type Store struct {
	db       *pebble.DB
	log      utils.SimpleLogger
	listener Listener
}

var _ Registry = (*Store)(nil)

// Open opens or creates the store at path.
func Open(path string, log utils.SimpleLogger) (*Store, error) {
	return open(path, &pebble.Options{}, log)
}

// OpenMem opens a store backed by memory only.
func OpenMem(log utils.SimpleLogger) (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()}, log)
}

func open(path string, options *pebble.Options, log utils.SimpleLogger) (*Store, error) {
	db, err := pebble.Open(path, options)
	if err != nil {
		return nil, fmt.Errorf("open definition store: %w", err)
	}
	return &Store{db: db, log: log, listener: &SelectiveListener{}}, nil
}

// WithListener registers a Listener notified of every lookup.
func (s *Store) WithListener(listener Listener) *Store {
	s.listener = listener
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

func definitionKey(id string) []byte {
	return append(append(make([]byte, 0, len(definitionPrefix)+len(id)), definitionPrefix...), id...)
}

// Put stores the given definitions in a single batch.
func (s *Store) Put(defs ...format.Definition) error {
	batch := s.db.NewBatch()
	for _, d := range defs {
		value, err := encoder.Marshal(format.NewDefinitionRecord(d))
		if err != nil {
			return utils.RunAndWrapOnError(batch.Close, fmt.Errorf("encode definition %s: %w", d.DefinitionID(), err))
		}
		if err = batch.Set(definitionKey(d.DefinitionID()), value, nil); err != nil {
			return utils.RunAndWrapOnError(batch.Close, err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return utils.RunAndWrapOnError(batch.Close, err)
	}
	s.log.Debugw("Stored definitions", "count", len(defs))
	return batch.Close()
}

// Get returns the definition stored under id, or ErrNotFound.
func (s *Store) Get(id string) (format.Definition, error) {
	value, closer, err := s.db.Get(definitionKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	d, err := decodeDefinition(value)
	if err != nil {
		return nil, utils.RunAndWrapOnError(closer.Close, fmt.Errorf("decode definition %s: %w", id, err))
	}
	return d, closer.Close()
}

// Lookup implements Registry. Read failures other than a missing id are
// logged and reported as absent.
func (s *Store) Lookup(id string) (format.Definition, bool) {
	d, err := s.Get(id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Errorw("Failed to read definition", "id", id, "err", err)
		}
		s.listener.OnLookup(id, false)
		return nil, false
	}
	s.listener.OnLookup(id, true)
	return d, true
}

// Load reads every stored definition into a new Map.
func (s *Store) Load() (*Map, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: definitionPrefix,
		UpperBound: upperBound(definitionPrefix),
	})
	if err != nil {
		return nil, err
	}

	m := NewMap()
	for iter.First(); iter.Valid(); iter.Next() {
		value, err := iter.ValueAndErr()
		if err != nil {
			return nil, utils.RunAndWrapOnError(iter.Close, err)
		}
		d, err := decodeDefinition(value)
		if err != nil {
			return nil, utils.RunAndWrapOnError(iter.Close, fmt.Errorf("decode definition %s: %w",
				iter.Key()[len(definitionPrefix):], err))
		}
		m.Add(d)
	}
	if err = iter.Close(); err != nil {
		return nil, err
	}
	s.log.Debugw("Loaded definitions", "count", m.Len())
	return m, nil
}

func decodeDefinition(value []byte) (format.Definition, error) {
	record := new(format.DefinitionRecord)
	if err := encoder.Unmarshal(value, record); err != nil {
		return nil, err
	}
	return record.Definition()
}

// upperBound returns the smallest key greater than every key with prefix.
func upperBound(prefix []byte) []byte {
	ub := make([]byte, len(prefix))
	copy(ub, prefix)
	for i := len(ub) - 1; i >= 0; i-- {
		ub[i]++
		if ub[i] != 0 {
			return ub[:i+1]
		}
	}
	return nil
}

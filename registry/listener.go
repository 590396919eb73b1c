package registry

import "github.com/NethermindEth/abify/format"

type Listener interface {
	OnLookup(id string, found bool)
}

type SelectiveListener struct {
	OnLookupCb func(id string, found bool)
}

func (l *SelectiveListener) OnLookup(id string, found bool) {
	if l.OnLookupCb != nil {
		l.OnLookupCb(id, found)
	}
}

// Observed wraps a Registry so that every lookup is reported to a Listener.
type Observed struct {
	Registry Registry
	Listener Listener
}

func (o *Observed) Lookup(id string) (format.Definition, bool) {
	d, ok := o.Registry.Lookup(id)
	o.Listener.OnLookup(id, ok)
	return d, ok
}

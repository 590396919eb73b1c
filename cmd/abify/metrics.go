package main

import (
	"io"
	"strconv"

	"github.com/NethermindEth/abify/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type metrics struct {
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
	results  *prometheus.CounterVec
	failed   prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abify",
			Subsystem: "registry",
			Name:      "lookups",
		}, []string{"found"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abify",
			Subsystem: "normalize",
			Name:      "arguments",
		}, []string{"kind"}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "abify",
			Subsystem: "normalize",
			Name:      "failed_inputs",
		}),
	}
	m.registry.MustRegister(m.lookups, m.results, m.failed)
	return m
}

func (m *metrics) registryListener() registry.Listener {
	return &registry.SelectiveListener{
		OnLookupCb: func(_ string, found bool) {
			m.lookups.WithLabelValues(strconv.FormatBool(found)).Inc()
		},
	}
}

// write prints the collected metrics in the Prometheus text format.
func (m *metrics) write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err = expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

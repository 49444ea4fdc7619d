// Package stats provides a minimal scoped stats receiver backed by
// go-metrics. Instruments are named hierarchically with '/' separators and
// registered lazily, so callers can pass a receiver down a call tree and
// scope it at each level:
//
//	stat := stats.DefaultReceiver().Scope("poller")
//	stat.Counter("queries").Inc(1)
package stats

import (
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
)

// Receiver hands out named instruments within a scope. The zero value is a
// no-op receiver, safe to use from code that was not given a real one.
type Receiver struct {
	scope    string
	registry metrics.Registry
}

var defaultReceiver = Receiver{registry: metrics.NewRegistry()}

// DefaultReceiver returns the process-wide receiver.
func DefaultReceiver() Receiver {
	return defaultReceiver
}

// NilReceiver returns a receiver whose instruments record nothing.
func NilReceiver() Receiver {
	return Receiver{}
}

func (r Receiver) Scope(parts ...string) Receiver {
	joined := strings.Join(parts, "/")
	if r.scope != "" {
		joined = r.scope + "/" + joined
	}
	return Receiver{scope: joined, registry: r.registry}
}

func (r Receiver) name(instrument string) string {
	if r.scope == "" {
		return instrument
	}
	return r.scope + "/" + instrument
}

func (r Receiver) Counter(instrument string) metrics.Counter {
	if r.registry == nil {
		return metrics.NilCounter{}
	}
	return metrics.GetOrRegisterCounter(r.name(instrument), r.registry)
}

func (r Receiver) Gauge(instrument string) metrics.Gauge {
	if r.registry == nil {
		return metrics.NilGauge{}
	}
	return metrics.GetOrRegisterGauge(r.name(instrument), r.registry)
}

func (r Receiver) Timer(instrument string) metrics.Timer {
	if r.registry == nil {
		return metrics.NilTimer{}
	}
	return metrics.GetOrRegisterTimer(r.name(instrument), r.registry)
}

// Latency records the duration since start against a timer instrument.
func (r Receiver) Latency(instrument string, start time.Time) {
	r.Timer(instrument).UpdateSince(start)
}

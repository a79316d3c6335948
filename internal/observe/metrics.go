// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments recorded by the
// playback core.
//
// Instruments are created from a caller supplied metric.MeterProvider. The
// playback core falls back to the no-op provider, so metrics cost nothing
// unless a host wires a real SDK provider. Tests should build their own
// provider around an sdkmetric.ManualReader.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/ik5/audplay"

// Load outcomes used for the status attribute of Loads.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Metrics holds every instrument. The otel types are safe for concurrent
// use.
type Metrics struct {
	// EffectsPlayed counts effects that were given a channel.
	EffectsPlayed metric.Int64Counter

	// EffectsDropped counts effects dropped because every channel was busy.
	EffectsDropped metric.Int64Counter

	// Loads counts load calls. Use with attributes:
	//   attribute.String("op", ...), attribute.String("status", ...)
	Loads metric.Int64Counter

	// StreamRefills counts blocks queued by streaming sessions and the
	// module player.
	StreamRefills metric.Int64Counter

	// StreamUnderruns counts refills that found the voice already drained.
	StreamUnderruns metric.Int64Counter

	// DecodeDuration tracks how long full decodes take.
	DecodeDuration metric.Float64Histogram

	// DeferredPending tracks the deferred load queue length.
	DeferredPending metric.Int64UpDownCounter
}

// decodeBuckets are histogram boundaries in seconds.
var decodeBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates every instrument from mp. A nil mp selects the no-op
// provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.EffectsPlayed, err = m.Int64Counter("audplay.effects.played",
		metric.WithDescription("Sound effects started on a channel."),
	); err != nil {
		return nil, err
	}
	if met.EffectsDropped, err = m.Int64Counter("audplay.effects.dropped",
		metric.WithDescription("Sound effects dropped because no channel was free."),
	); err != nil {
		return nil, err
	}
	if met.Loads, err = m.Int64Counter("audplay.loads",
		metric.WithDescription("Load calls by operation and status."),
	); err != nil {
		return nil, err
	}
	if met.StreamRefills, err = m.Int64Counter("audplay.stream.refills",
		metric.WithDescription("PCM blocks queued on the music channel."),
	); err != nil {
		return nil, err
	}
	if met.StreamUnderruns, err = m.Int64Counter("audplay.stream.underruns",
		metric.WithDescription("Refills that found the music channel drained."),
	); err != nil {
		return nil, err
	}
	if met.DecodeDuration, err = m.Float64Histogram("audplay.decode.duration",
		metric.WithDescription("Time spent decoding a whole sound."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(decodeBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DeferredPending, err = m.Int64UpDownCounter("audplay.deferred.pending",
		metric.WithDescription("Load requests waiting in the deferred queue."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Noop returns instruments backed by the no-op provider.
func Noop() *Metrics {
	met, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		panic("observe: noop metrics: " + err.Error())
	}
	return met
}

// RecordLoad counts one load call with the standard attribute set.
func (m *Metrics) RecordLoad(ctx context.Context, op, status string) {
	m.Loads.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("status", status),
		),
	)
}

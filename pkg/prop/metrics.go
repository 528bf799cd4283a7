// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package prop

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records propagation statistics across one or more spaces.  Clones of
// a space share its metrics.
type Metrics struct {
	registry     *prometheus.Registry
	propagations *prometheus.CounterVec
	failures     *prometheus.CounterVec
	subsumptions prometheus.Counter
	steps        prometheus.Histogram
}

// NewMetrics constructs a set of propagation metrics within a fresh registry.
func NewMetrics() *Metrics {
	var (
		registry = prometheus.NewRegistry()
		factory  = promauto.With(registry)
	)
	//
	return &Metrics{
		registry: registry,
		propagations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fprop",
			Name:      "propagations_total",
			Help:      "Number of propagator executions",
		}, []string{"propagator"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fprop",
			Name:      "failures_total",
			Help:      "Number of propagator executions which failed",
		}, []string{"propagator"}),
		subsumptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fprop",
			Name:      "subsumptions_total",
			Help:      "Number of propagators discarded as subsumed",
		}),
		steps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fprop",
			Name:      "fixpoint_steps",
			Help:      "Number of propagator executions per fixpoint",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

// Registry returns the registry holding these metrics, for example to gather
// and report them.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Snapshot gathers the current value of every counter, keyed by metric name
// and label (e.g. "fprop_propagations_total{propagator=mult}").  For the step
// histogram, the sample count and sum are given with "_count" and "_sum"
// suffixes.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.registry.Gather()
	//
	if err != nil {
		return nil, err
	}
	//
	values := make(map[string]float64)
	//
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			//
			for _, label := range metric.GetLabel() {
				key = fmt.Sprintf("%s{%s=%s}", key, label.GetName(), label.GetValue())
			}
			//
			if c := metric.GetCounter(); c != nil {
				values[key] = c.GetValue()
			} else if h := metric.GetHistogram(); h != nil {
				values[key+"_count"] = float64(h.GetSampleCount())
				values[key+"_sum"] = h.GetSampleSum()
			}
		}
	}
	//
	return values, nil
}

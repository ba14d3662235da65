// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testonly provides helpers for checking MetricFactory
// implementations and for asserting on metric movement in tests.
package testonly

import (
	"testing"

	"github.com/google/logtree/monitoring"
)

// labelCases is the label arity matrix every MetricFactory implementation
// must handle.
var labelCases = []struct {
	name       string
	labelNames []string
	labelVals  []string
}{
	{name: "no_labels"},
	{name: "one_label", labelNames: []string{"key1"}, labelVals: []string{"val1"}},
	{name: "two_labels", labelNames: []string{"key1", "key2"}, labelVals: []string{"val1", "val2"}},
}

func bogusLabels(labelVals []string) []string {
	return append(append([]string{}, labelVals...), "bogus")
}

// TestCounter checks a Counter produced from the provided MetricFactory.
func TestCounter(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		counter := factory.NewCounter("test_counter_"+tc.name, "Test metric", tc.labelNames...)
		if got, want := counter.Value(tc.labelVals...), 0.0; got != want {
			t.Errorf("Counter(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		counter.Inc(tc.labelVals...)
		counter.Add(2.5, tc.labelVals...)
		if got, want := counter.Value(tc.labelVals...), 3.5; got != want {
			t.Errorf("Counter(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		// Updates with the wrong number of labels must be dropped.
		bogus := bogusLabels(tc.labelVals)
		counter.Inc(bogus...)
		counter.Add(10.0, bogus...)
		if got, want := counter.Value(bogus...), 0.0; got != want {
			t.Errorf("Counter(%s)[%v].Value()=%v; want %v", tc.name, bogus, got, want)
		}
	}
}

// TestGauge checks a Gauge produced from the provided MetricFactory.
func TestGauge(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		gauge := factory.NewGauge("test_gauge_"+tc.name, "Test metric", tc.labelNames...)
		if got, want := gauge.Value(tc.labelVals...), 0.0; got != want {
			t.Errorf("Gauge(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		gauge.Inc(tc.labelVals...)
		gauge.Inc(tc.labelVals...)
		gauge.Dec(tc.labelVals...)
		if got, want := gauge.Value(tc.labelVals...), 1.0; got != want {
			t.Errorf("Gauge(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		gauge.Add(2.5, tc.labelVals...)
		if got, want := gauge.Value(tc.labelVals...), 3.5; got != want {
			t.Errorf("Gauge(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		gauge.Set(42.0, tc.labelVals...)
		if got, want := gauge.Value(tc.labelVals...), 42.0; got != want {
			t.Errorf("Gauge(%s)[%v].Value()=%v; want %v", tc.name, tc.labelVals, got, want)
		}
		// Updates with the wrong number of labels must be dropped.
		bogus := bogusLabels(tc.labelVals)
		gauge.Inc(bogus...)
		gauge.Dec(bogus...)
		gauge.Add(10.0, bogus...)
		gauge.Set(120.0, bogus...)
		if got, want := gauge.Value(bogus...), 0.0; got != want {
			t.Errorf("Gauge(%s)[%v].Value()=%v; want %v", tc.name, bogus, got, want)
		}
	}
}

// TestHistogram checks a Histogram produced from the provided MetricFactory.
func TestHistogram(t *testing.T, factory monitoring.MetricFactory) {
	for _, tc := range labelCases {
		histogram := factory.NewHistogram("test_histogram_"+tc.name, "Test metric", tc.labelNames...)
		gotCount, gotSum := histogram.Info(tc.labelVals...)
		if wantCount, wantSum := uint64(0), 0.0; gotCount != wantCount || gotSum != wantSum {
			t.Errorf("Histogram(%s)[%v].Info()=%v,%v; want %v,%v", tc.name, tc.labelVals, gotCount, gotSum, wantCount, wantSum)
		}
		histogram.Observe(1.0, tc.labelVals...)
		histogram.Observe(2.0, tc.labelVals...)
		histogram.Observe(3.0, tc.labelVals...)
		gotCount, gotSum = histogram.Info(tc.labelVals...)
		if wantCount, wantSum := uint64(3), 6.0; gotCount != wantCount || gotSum != wantSum {
			t.Errorf("Histogram(%s)[%v].Info()=%v,%v; want %v,%v", tc.name, tc.labelVals, gotCount, gotSum, wantCount, wantSum)
		}
		// Observations with the wrong number of labels must be dropped.
		bogus := bogusLabels(tc.labelVals)
		histogram.Observe(100.0, bogus...)
		gotCount, gotSum = histogram.Info(bogus...)
		if wantCount, wantSum := uint64(0), 0.0; gotCount != wantCount || gotSum != wantSum {
			t.Errorf("Histogram(%s)[%v].Info()=%v,%v; want %v,%v", tc.name, bogus, gotCount, gotSum, wantCount, wantSum)
		}
	}
}

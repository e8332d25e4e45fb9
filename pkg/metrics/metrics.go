/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelWindowKind = "kind"
	LabelClauseSide = "side"
)

// Window scanner metrics
var (
	// WindowsEmitted is the number of windows handed to the clause driver
	WindowsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "window",
		Name:      "emitted_total",
		Help:      "Total number of windows emitted by the window scanner",
	}, []string{LabelWindowKind})

	// WindowsDiscarded is the number of started windows dropped because "only end" never matched
	WindowsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "window",
		Name:      "discarded_total",
		Help:      "Total number of started windows discarded for lack of a matching end condition",
	}, []string{LabelWindowKind})

	// ConditionEvaluations counts start and end condition invocations
	ConditionEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "window",
		Name:      "condition_evaluations_total",
		Help:      "Total number of start/end condition evaluations",
	}, []string{LabelWindowKind, LabelClauseSide})
)

// Window clause driver metrics
var (
	// ReturnItems is the number of items produced by return expressions
	ReturnItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "window",
		Name:      "return_items_total",
		Help:      "Total number of items produced by the return expression",
	}, []string{LabelWindowKind})

	// ReturnErrors is the number of failed return expression evaluations
	ReturnErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "window",
		Name:      "return_errors_total",
		Help:      "Total number of return expression evaluation failures",
	}, []string{LabelWindowKind})
)

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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time and memory used by some task, such as loading a
// model or computing a fixpoint.
type PerfStats struct {
	// Time when the task began
	startTime time.Time
	// Total memory allocated when the task began
	startMem uint64
	// Number of gc events when the task began
	startGc uint32
}

// NewPerfStats takes a snapshot of the current time and memory usage.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Elapsed returns the time since this snapshot was taken.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Log reports the time and memory used since this snapshot was taken, at the
// debug level.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	alloc := float64(m.TotalAlloc-p.startMem) / (1 << 20)
	gcs := m.NumGC - p.startGc
	//
	log.Debugf("%s took %0.3fs using %0.1f Mb (%v GC events) [%0.1f Mb]", prefix, p.Elapsed().Seconds(), alloc, gcs,
		float64(m.Alloc)/(1<<20))
}

// Copyright 2025 Veyra Labs
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


package extraction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/metrics"
	"github.com/veyra/skillmap/sources"
)

// Orchestrator fans extraction out across source adapters and joins the
// results. One adapter failing never aborts its siblings; the failure is
// recorded in that adapter's status and the merge proceeds without it.
type Orchestrator struct {
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		logger: slog.Default().With("component", "extraction-orchestrator"),
	}
}

// Run invokes every adapter concurrently and returns the candidate union
// plus a per-source status map. The union preserves adapter supply order,
// then each adapter's own output order, so results are deterministic for a
// given set of adapter outputs.
//
// Zero adapters is a caller error: nothing is invoked and ErrNoSources is
// returned.
func (o *Orchestrator) Run(ctx context.Context, adapters []sources.Adapter) ([]core.Candidate, map[string]core.SourceStatus, error) {
	if len(adapters) == 0 {
		return nil, nil, ErrNoSources
	}

	// Each goroutine owns exactly its own slot; no locking needed beyond
	// the join barrier.
	results := make([][]core.Candidate, len(adapters))
	statuses := make([]core.SourceStatus, len(adapters))

	var wg sync.WaitGroup
	for i, adapter := range adapters {
		statuses[i] = core.SourceStatus{State: core.StateProcessing}

		wg.Add(1)
		go func(i int, adapter sources.Adapter) {
			defer wg.Done()

			candidates, err := adapter.Extract(ctx)
			if err != nil {
				o.logger.Warn("source extraction failed",
					"source", adapter.Label(), "err", err)
				metrics.RecordSourceError(adapter.Label())
				statuses[i] = core.SourceStatus{State: core.StateError, Err: err.Error()}
				return
			}

			results[i] = candidates
			statuses[i] = core.SourceStatus{State: core.StateCompleted, Count: len(candidates)}
		}(i, adapter)
	}
	wg.Wait()

	var union []core.Candidate
	statusMap := make(map[string]core.SourceStatus, len(adapters))
	for i, adapter := range adapters {
		union = append(union, results[i]...)
		statusMap[adapter.Label()] = statuses[i]
	}

	o.logger.Debug("orchestration complete",
		"sources", len(adapters), "candidates", len(union))
	return union, statusMap, nil
}

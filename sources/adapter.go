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


package sources

import (
	"context"

	"github.com/veyra/skillmap/core"
)

// Source labels as they appear in candidate provenance and run status maps.
const (
	LabelDocument = "Document"
	LabelText     = "Text"
	LabelGitHub   = "GitHub"
)

// Adapter turns one evidence source into skill candidates.
//
// Implementations must be safe for concurrent use and must not mutate
// shared state: the orchestrator invokes every adapter from its own
// goroutine.
type Adapter interface {
	// Label returns the stable source label ("Document", "Text", "GitHub").
	Label() string

	// Extract produces candidates from the adapter's input. Each returned
	// candidate carries the adapter's label in its Source field.
	Extract(ctx context.Context) ([]core.Candidate, error)
}

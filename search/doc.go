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


// Package search filters a profile's skill inventory.
//
// Filter applies a Query to a slice of skills already loaded from storage:
// free-text matching over the skill name and microstory (word-based, with
// stop words removed), plus exact cluster and unlock-state filters. Results
// are ordered by confidence descending, then by name.
package search

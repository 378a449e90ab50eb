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


// Package ai provides abstractions for the inference oracle used in skillmap.
//
// This package defines interfaces for oracle operations: skill extraction,
// gap analysis, CV rewrite suggestions, and batch reclustering. It follows
// the dependency inversion principle, allowing the core domain and business
// logic to depend on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four service interfaces plus a provider:
//
//   - SkillExtractor: Turns free-form text into skill candidates
//   - GapAnalyst: Compares a skill set against a target role
//   - StoryWriter: Proposes CV bullet rewrites
//   - Classifier: Reassigns cluster labels in batch
//   - Provider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewSkillExtractor, etc.)
// return INTERFACE types to enforce abstraction and prevent accidental
// coupling to concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewProvider, mock.NewSkillExtractor)
// return CONCRETE types to enable test assertions and behavior injection
// via the mocks' public function fields.
//
// # Usage Example
//
//	// Production usage with OpenAI-compatible provider
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	candidates, err := provider.SkillExtractor().ExtractSkills(ctx, resumeText, "Document")
//
//	// Testing usage with mocks
//	mockProvider := mock.NewProvider()
//	candidates, err := mockProvider.SkillExtractor().ExtractSkills(ctx, "go python", "Text")
//
// All oracle responses are validated and normalized at this boundary:
// confidence clamped to [0,1], empty names dropped, missing clusters
// defaulted, unlock state derived from confidence when absent. Callers
// downstream of this package never see raw oracle output.
package ai

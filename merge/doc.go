// Package merge deduplicates skill candidates collected from multiple
// extraction sources into a single skill set.
//
// Candidates are merged by case-folded, whitespace-trimmed name. Confidence
// combines as a running pairwise mean, evidence as an exact-string set
// union, and source labels as a joined list. All other fields keep the
// value of the first candidate seen for a key.
package merge

// Package insight provides oracle-backed career analysis over a profile's
// skill inventory: gap analysis against a target role and CV bullet
// rewrites. Oracle output is normalized and cross-checked against locally
// stored skills before it reaches callers.
package insight

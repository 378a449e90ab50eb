// Package postgres provides a PostgreSQL implementation of the storage
// repositories using pgx connection pooling.
//
// Schema migrations are embedded in the binary (schema/*.sql) and applied in
// filename order on Connect. Skills are keyed (profile_id, merge_key) so a
// profile holds at most one row per case-folded skill name; evidence is
// stored as JSONB.
//
// This backend is exercised against a live database configured via
// storage.backend=postgres; it has no in-memory mode, so unit tests cover
// the badger backend and the shared serialization layer instead.
package postgres

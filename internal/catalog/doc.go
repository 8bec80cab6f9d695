// Package catalog persists extraction-run history in SQLite: one row per
// run plus the per-frame timestamps the decoder reported. The catalog is
// bookkeeping only; the extraction pipeline never reads it.
package catalog

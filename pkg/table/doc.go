// Package table models the rows of the grid: the draft/pending/approved/
// rejected lifecycle, the typed cell value variant, and the meta fields
// (version, timestamps, ownership) the mutation engine maintains.
package table

// Package grid turns spreadsheet-shaped input and output into engine terms:
// tab-separated clipboard text, paste expansion over a cell selection, and
// xlsx workbook import/export. Nothing here writes rows; everything funnels
// into mutation.CellUpdate batches or pre-built draft rows.
package grid

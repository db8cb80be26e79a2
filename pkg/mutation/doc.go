// Package mutation owns row state. The Engine is the only writer of rows:
// every edit path (cell edits, pastes, imports, draft submission) funnels
// into it, where write access is re-derived per cell at apply time and every
// accepted change lands in the audit log.
package mutation

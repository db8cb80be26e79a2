// Package cli implements the operator console. Every data command takes an
// explicit --as flag naming the acting user; there is no ambient identity,
// so switching who you operate as is always a visible step.
package cli

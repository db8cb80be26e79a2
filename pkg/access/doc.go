// Package access is the permission decision engine. Every function here is
// pure: given a user, a row, and a workspace it answers who may see what and
// who may write what, without touching any store.
//
// One deliberate quirk carries through from the review flow: the status
// pseudo-column is writable by every user who can see the row at all. Status
// transitions are how submission and approval happen, so the gate on which
// transitions are legal lives in the mutation engine, not here.
package access

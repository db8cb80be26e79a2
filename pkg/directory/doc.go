// Package directory holds the user and role-group reference data that the
// access-control engine evaluates against: system roles, group membership,
// and the manager-link forest used for subordinate visibility.
package directory

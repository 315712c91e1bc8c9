// Package types defines the entity shapes held in the local collection
// store, the standard collection names, the repository configuration, and
// the standard errors shared across the storefront core.
package types

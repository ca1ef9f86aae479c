// Package index persists the per-identity metadata index: the ordered list
// of records a signed-in user owns. Each identity's index lives under its
// own key of a kv.Repository and is always read and written as a whole.
package index

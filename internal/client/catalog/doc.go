// Package catalog holds the in-memory record catalog of the signed-in
// identity and keeps its persisted index in step with every mutation.
//
// Mutations are serialized and each one is saved before the next starts,
// so saves land in the order the mutations were made. When a save fails
// the in-memory catalog stays authoritative for the rest of the session
// and the caller gets an error wrapping index.ErrStorageWrite.
package catalog

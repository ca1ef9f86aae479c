// Package upload turns a user's file selection into catalog records.
//
// Files are validated up front, then uploaded one at a time. Each success
// is added to the catalog immediately; each failure only marks its task.
// Task progress is transient: a task is dropped a short while after it
// finishes, and a new batch discards whatever the previous one left.
package upload

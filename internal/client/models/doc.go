// Package models defines the client-side data model of the records client:
// catalog records, upload inputs and results, and per-file upload progress.
package models

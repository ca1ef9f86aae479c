// Package services holds the record operations that combine the catalog
// with the asset host: viewing, downloading, exporting and importing.
package services

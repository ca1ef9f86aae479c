// Package cli provides the interactive health-records command-line client.
//
// It wires configuration, the index storage backend, the asset host, the
// record catalog and the upload orchestrator behind a REPL. Typical flow:
// log in, upload files, browse and filter the list, open or download a
// record, log out.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli

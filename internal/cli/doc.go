// Package cli provides the interactive pourlog command-line client.
//
// It wires configuration, the photo directory, the durable record backend and
// an interactive REPL. The remote side (object storage, snapshot table,
// identity) is constructed lazily on the first sync command, so a local-only
// session never opens a network connection.
//
// Key features:
//   - Add / List / Show / Delete pours
//   - Sync photos to object storage, Push / Pull whole-dataset snapshots
//   - Export / Import snapshot files
//   - Collection statistics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

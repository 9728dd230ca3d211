// Package bridge synchronizes the local pour collection with remote backup
// storage.
//
// # Overview
//
// The bridge owns two independent concerns: moving locally sourced photo
// bytes to object storage (rewriting each record's reference to the public
// locator afterwards), and exchanging whole-dataset snapshots with a remote
// table keyed by user. It consumes the remote side through three narrow
// interfaces — ObjectStorage, SnapshotTable and Identity — so the record
// store stays unaware of any backend.
//
// # Failure model
//
// Every operation first resolves the current user and fails fast with
// common.ErrAuthRequired before any I/O when none is available. Photo
// uploads are isolated per record and aggregated; a snapshot push is refused
// with common.ErrPrecondition while any photo remains local, because remote
// snapshots must only reference remote URLs. Remote failures never corrupt
// local state: a failed upload leaves the record's photo local and
// retryable on the next trigger.
package bridge

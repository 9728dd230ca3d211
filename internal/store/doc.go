// Package store holds the authoritative pour-record collection.
//
// # Overview
//
// The Store keeps the whole collection in memory and exposes it as an
// immutable snapshot through All and Watch. Mutations (Create, Update,
// Destroy, DestroyAll, Import) replace the snapshot wholesale: durable
// storage is rewritten first, subscribers are notified synchronously after,
// so observers only ever see complete, committed states.
//
// # Persistence
//
// Durability goes through the Persistence interface. Two backends live in
// the records sub-package: a sqlite table (the default) and a JSON blob
// file. Either one is loaded exactly once, by Open, at startup; the
// in-memory snapshot is authoritative for the rest of the session.
//
// # Photo enrichment
//
// Create and Update run photo references through the derivation pipeline
// before committing, so a committed record with a local photo always has a
// working copy in the managed directory and a blurhash for placeholder
// rendering. Derivation failures abort the operation; nothing partial is
// committed.
//
// Typical Usage
//
//	st := store.New(records.NewSQLiteRepository(db), pipeline, log)
//	if err := st.Open(ctx); err != nil { ... }
//	id, err := st.Create(ctx, store.Draft{PhotoURL: picked, Rating: 4})
//	stop := st.Watch(func(snap []models.PourRecord) { render(snap) })
//	defer stop()
package store

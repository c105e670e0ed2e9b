// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The game keeps its content catalogs (traits,
// cards, shelters, catastrophes) as JSON documents in a bucket so that content
// editors can publish a new catalog without touching the database directly.
//
// # Client Interface
//
// The Client interface abstracts the provider so storage interactions can be
// mocked in tests (see core/storage/mocks).
//
// # Helpers
//
//   - ReadObject: downloads a whole object after checking the bucket.
//   - WriteObject: uploads bytes, creating the bucket when needed.
//   - ListObjectNames: lists object keys under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, "bunker", "catalog/catalog.json")
package storage

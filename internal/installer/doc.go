// Package installer reconciles a project's agent outputs and manifest with
// the catalog.
//
// An [Engine] binds a catalog to a platform adapter. Batch operations
// (Add, Remove, Sync) process items one at a time, record a per-item
// [ItemResult] and keep going after an item fails. The manifest is saved as
// the last step of each item that changes it, so an interrupted run loses at
// most the item in flight.
package installer

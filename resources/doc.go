// Package resources defines the capability contract between resource
// consumers and resource providers (stores).
//
// A Store resolves slash-separated paths into lazy Resource handles. A
// Resource answers existence and local-file questions and can be opened
// into a Connection, which pins the content for consistent metadata and
// stream access until closed.
//
// # Absence vs. failure
//
// Absence of content is never an error: GetResource always succeeds, and a
// Resource for missing content simply reports Exists() == false. Errors are
// reserved for actual backend failures (I/O, connectivity) and for misuse
// of a closed Connection (ErrClosed).
//
// # Implementations
//
// One production store exists per storage kind:
//
//   - resources/local: files under a root directory
//   - resources/zipfile: entries of a zip archive
//   - resources/s3: objects in an S3/MinIO bucket
//   - resources/dbstore: blobs in a MySQL table
//   - resources/union: composite over an ordered list of other stores
//
// Because the union store implements Store itself, unions nest: a union may
// appear as a member of another union.
package resources

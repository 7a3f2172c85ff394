// Package provider loads, validates and exposes a service provider record:
// the provider's identity, its ordered station list, its API URL templates
// and its contact list.
//
// A Provider is immutable once built. Parse and ParseMerged either return a
// fully validated record or an error, never a partial one. Long-running
// processes keep the current record in a Holder, which swaps whole records
// on reload so concurrent readers never observe a half-updated value.
//
// Source documents are JSON (optionally with whole-line // comments) or
// YAML. Field names are case-sensitive and unknown fields are ignored.
// Numbers are never accepted where a string is expected. YAML timestamps
// are kept as strings and non-finite numbers are rejected, so every record
// can be written back as JSON.
//
// A key repeated inside one mapping is handled by the underlying decoder:
// JSON keeps the last value, YAML rejects the document with a ParseError.
// Across documents, ParseMerged lets later keys win in both formats.
package provider

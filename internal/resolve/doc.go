// Package resolve fetches and binds an organization's stellar.toml.
//
// Ownership boundary:
// - well-known address construction (secure and insecure)
// - a single fetch attempt per call and status classification
// - handing the body to manifest.Decode
// - the Error taxonomy covering every failing stage
//
// Resolution state per call:
//
//	BuildingAddress -> Fetching -> Success -> Parsing -> Binding -> Done
//	                            -> ClientError | ServerError -> Done(Error)
//	                            -> TransportFailure -> Done(Error)
//
// There are no retries and no caching. A Resolver holds no mutable state and
// is safe for concurrent use.
package resolve

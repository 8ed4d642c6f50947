// Package objstore is a content-addressed object store on an afero.Fs.
//
// Objects are keyed by the hex SHA-256 of their uncompressed bytes and stored brotli-compressed
// in a sharded layout:
//
//	<root>/objects/<hash[0:2]>/<hash[2:]>
//
// Writing the same bytes twice is a no-op. Get re-hashes what it reads, so a damaged object is
// reported as ErrCorrupt rather than returned.
package objstore

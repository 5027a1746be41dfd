// Package syncutil collects small concurrency helpers.
//
//   - [Lazy] computes a value once and hands it to every caller.
//   - [ExpiringMemoize] caches keyed results for a fixed period and
//     collapses concurrent loads of the same key into one call.
//   - [Signal] fans a value out to connected receivers. A panicking
//     receiver is reported and does not stop the others.
//   - [Timer] is a one-shot timer that can be pushed back with Restart.
//   - [ChunkIter] drains a sequence on a background goroutine and reports
//     it in fixed-size chunks.
package syncutil

// Package fixtures provides record builders for tests.
//
// A Producer hands out gapless positions and keys for one partition, the way a partition's
// stream processor would, so tests can write realistic record streams without a running engine.
package fixtures

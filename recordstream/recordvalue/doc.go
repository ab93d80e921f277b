// Package recordvalue contains the payload schemas of the records emitted by the process engine
// under test.
//
// Payloads are appended by value. Payloads holding reference types either implement
// recordstream.DeepCopier or are fully represented by their exported fields, so that the store
// can take a defensive copy at append time.
//
// The Get* accessors exist so that query filters can be written once for all payloads sharing a field,
// e.g. every payload scoped to a process instance.
package recordvalue

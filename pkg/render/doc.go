// Package render serializes substrate trees to HTML.
//
// The demo server uses it to deliver the materialized player shell; tests
// use it to snapshot trees. Output is deterministic: attributes are emitted
// in sorted order.
package render

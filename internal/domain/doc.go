// Package domain defines the case-record data model: cases with their fixed
// branch partitions, documents and their lifecycle statuses, artifacts,
// parties, links, and audit trace events.
//
// The package is dependency-light on purpose. Stores and the gate depend on
// domain; domain depends on nothing above the identity generators.
package domain

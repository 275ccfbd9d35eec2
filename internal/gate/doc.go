// Package gate implements the single authoritative entry point for all reads
// and mutations of the record store.
//
// Every operation submission flows through Gate.Submit:
//
//	read operation     -> read handler -> enriched result
//	mutation operation -> validator (if registered) -> executor -> trace append
//
// Validators enforce domain policy (status-transition legality, filename
// compliance, cross-case isolation, audit justification) and never partially
// apply state. Every accepted mutation appends exactly one immutable trace
// event; no write path can skip the append.
//
// Failures anywhere below Submit surface as exactly one typed *Error in the
// response. The store is untouched and no trace event is written when a
// validator rejects.
//
// Concurrency: mutations carrying a document identity serialize on a
// per-document mutex, other mutations on a single fallback mutex, so
// validation always sees the latest committed state. Reads run unsynchronized
// against store snapshots.
package gate

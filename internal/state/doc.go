// Package state provides the per-resource stores shared by the console
// front-ends and the background poller.
//
// Each store owns its fields exclusively: operations are the only
// writers, and everything else reads through Snapshot copies. All
// stores follow the same settle contract:
//
//   - An operation sets loading=true and clears the local error when it
//     starts, and sets loading=false when it settles.
//   - On success the operation's target fields are replaced.
//   - On failure the error message is recorded and the previously
//     fetched data is left untouched, so the UI keeps rendering stale
//     but valid results.
//
// Overlapping invocations of the same operation are neither deduplicated
// nor cancelled. Settlements apply in completion order, so a slow early
// request can overwrite a faster later one. There is deliberately no
// generation guard; see DESIGN.md for the reasoning.
//
// The two list domains use different page-index conventions and must
// not be unified: the flag list is 0-indexed (page size changes reset
// the page to 0) while movie search is 1-indexed (query changes reset
// the page to 1).
package state

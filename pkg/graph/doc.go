// Package graph folds per-project dependency trees into one deduplicated
// node/edge graph.
//
// # Assembly
//
// An [Assembler] owns the node and edge maps for one run. Solutions are added
// one at a time with [Assembler.AddSolution]; every tree node is merged into
// the graph node with the same (case-insensitive) id:
//
//   - a node's type is the bitwise AND of the kinds of all its occurrences,
//     so a node seen as a package anywhere is reported as a package
//   - edges are keyed by (parent, child); a second occurrence with another
//     version appends it to the edge label ("1.0 | 2.0") and flags both the
//     edge and the child node as having multiple versions
//
// In merge mode every project of a solution collapses into a single node
// named after the solution, and project references are left out.
//
// # Labels
//
// [CompileLabels] turns a map of pattern to labels into [LabelRule] values.
// The keys "IsProject", "IsPackage" and "IsNuget" select nodes by type; any
// other key is a wildcard pattern (see package filter) over the node id.
// Matching labels are appended to the display label when the graph snapshot
// is taken.
//
// # Output
//
// [Assembler.Graph] returns a [Graph] snapshot:
//
//	{
//	  "nodes": [{"id": "Web", "label": "Web", "type": "project", "multipleVersions": false}],
//	  "edges": [{"from": "Web", "to": "Serilog", "label": "3.1.1", "multipleVersions": false}]
//	}
package graph

// Package io reads and writes assembled dependency graphs as JSON.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "Web", "label": "Web", "type": "project", "multipleVersions": false},
//	    {"id": "Serilog", "label": "Serilog", "type": "package", "multipleVersions": true}
//	  ],
//	  "edges": [
//	    {"from": "Web", "to": "Serilog", "label": "3.1.1 | 4.0.0", "multipleVersions": true}
//	  ]
//	}
//
// # Node Fields
//
//   - id: unique identifier, compared case-insensitively like NuGet ids
//   - label: display label (id plus any applied labels)
//   - type: "project" or "package"
//   - multipleVersions: at least one incoming edge carries several versions
//
// # Edge Fields
//
//   - from, to: node ids
//   - label: the version, or the " | " joined versions of a conflict
//   - multipleVersions: the edge was seen with more than one version
//
// # Import
//
// [ImportJSON] and [ReadJSON] validate the structure: node ids must be
// present and unique, types must be known and edges must reference existing
// nodes. Errors name the node or edge at fault.
//
// # Export
//
// [ExportJSON] and [WriteJSON] write the graph indented, in snapshot order,
// so the output of a run is stable and diffable.
package io

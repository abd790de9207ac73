// Package pkg holds the libraries behind sdv, a dependency visualizer for
// .NET solutions.
//
// Data flows through the packages in this order:
//
//	.sln file
//	    ↓
//	[solution]   discover projects, match manifests
//	    ↓
//	[nuget]      extract dependencies (project.assets.json, packages.config)
//	    ↓
//	[tree]       per-project dependency forests, filtered by [filter]
//	    ↓
//	[graph]      merge forests into one node/edge graph, flag version conflicts
//	    ↓
//	[io], [render/nodelink]   JSON, DOT and SVG output
//
// [pipeline] runs the whole flow over several solutions. Supporting
// packages: [idmap] (case-insensitive ordered maps), [cache] (parsed archive
// cache), [config] (TOML/YAML settings), [errors] (coded errors),
// [observability] (hooks) and [buildinfo].
package pkg

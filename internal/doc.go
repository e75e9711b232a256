// Package internal provides the core engine for linting Cairo syntax
// tree dumps.
//
// The engine coordinates the linting process: it takes modules either
// from a syntax database or from serialized tree dumps, fans their
// function bodies out to the registered rules, and collects the
// findings in document order.
//
// Key components:
//
// Engine: The main linting engine. It manages a collection of lint
// rules, applies them to modules, and keeps each module's source text
// around so formatters can render snippets later.
//
// LintRule: An interface that defines the contract for all lint rules.
// A rule names itself, declares the node kinds that trigger it, and
// checks one function body at a time.
//
// Cache: Persists lint results between runs, keyed by dump path and
// invalidated by content hash, registered dependency files, and age.
//
// SourceCode: A simple structure to represent the content of a source
// file as a collection of lines.
//
// Usage:
//
//	engine, err := internal.NewEngine(db, rules)
//	if err != nil {
//	    // handle error
//	}
//
//	diags, err := engine.Run("build/geometry.cst")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, diag := range diags {
//	    fmt.Printf("%s: %s at %s:%d\n", diag.Rule, diag.Message, diag.Filename, diag.Start.Line)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal

// Package syntax defines the tree model the linter analyzes: immutable
// nodes tagged with a Kind, grouped into function items and modules,
// served through a concurrency-safe database.
//
// The linter does not parse Cairo. A frontend (the compiler, or the
// treeio dump reader) produces the trees; this package only gives rules
// a uniform way to walk them. Three layers make that up:
//
//   - Node: one vertex of the tree, carrying its Kind, its exact source
//     text, its Span, and its children in source order. Nodes never
//     change after construction, so rules running on different
//     goroutines may share them freely.
//
//   - Typed views (MatchExpr, Arm, EnumPattern, Block, ...): thin
//     wrappers that name the children a rule cares about. AsMatchExpr
//     and friends behave like type assertions over the Kind tag.
//
//   - DB: lookup of modules, their items, and function bodies.
//     MemoryDB is the standard implementation, filled from dump files
//     by the treeio package.
//
// All Node methods tolerate a nil receiver and return zero values.
// Rules lean on that: an absent sub-pattern reads as empty text rather
// than a nil check at every step.
package syntax

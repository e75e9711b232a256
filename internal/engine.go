package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/cairoverse/clin/internal/trie"
	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
	"github.com/cairoverse/clin/treeio"
)

// Analyzer is the module-level entry point hosts drive the engine
// through.
type Analyzer interface {
	Analyze(moduleID syntax.ModuleID) ([]tt.Diagnostic, error)
}

// Engine manages the linting process.
type Engine struct {
	db           syntax.DB
	ignoredRules map[string]bool
	ignoredPaths *trie.Trie
	rules        map[string]LintRule
	cache        *Cache

	srcMu   sync.RWMutex
	sources map[string]*SourceCode

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

var _ Analyzer = (*Engine)(nil)

// NewEngine creates a new lint engine backed by the given syntax
// database. A nil db is allowed for engines that only lint dump files
// through Run; Analyze then reports an error.
func NewEngine(db syntax.DB, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		db:      db,
		sources: make(map[string]*SourceCode),
	}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"destructuring-match":   NewDestructuringMatchRule,
	"redundant-enum-parens": NewRedundantEnumParensRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	// iterate over allRuleConstructors and add them to the rules map if severity is not off
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Analyze runs every registered rule over the module's function items
// and returns the collected diagnostics. Items are analyzed on
// separate goroutines; diagnostics within one item keep document
// order, and items keep declaration order. Analyze may be called
// repeatedly and concurrently for distinct modules.
func (e *Engine) Analyze(moduleID syntax.ModuleID) ([]tt.Diagnostic, error) {
	if e.db == nil {
		return nil, errors.New("engine has no syntax database")
	}
	module, err := e.db.Module(moduleID)
	if err != nil {
		return nil, fmt.Errorf("loading module: %w", err)
	}
	items, err := e.db.ModuleItems(moduleID)
	if err != nil {
		return nil, fmt.Errorf("listing module items: %w", err)
	}
	e.cacheSource(module.Path, module.Source)

	return e.analyzeItems(module.Path, items, func(item syntax.Item) (*syntax.Node, error) {
		return e.db.FunctionBody(item.ID)
	}), nil
}

// AnalyzeModule runs the rules over a module value directly, such as
// one freshly decoded from a dump, without touching the database.
func (e *Engine) AnalyzeModule(module *syntax.Module) []tt.Diagnostic {
	if module == nil {
		return nil
	}
	e.cacheSource(module.Path, module.Source)

	return e.analyzeItems(module.Path, module.Items, func(item syntax.Item) (*syntax.Node, error) {
		if item.Body == nil {
			return nil, syntax.ErrNoBody
		}
		return item.Body, nil
	})
}

// analyzeItems fans the function items out to workers. Extern
// functions have no body and are skipped before the lookup; an item
// whose body cannot be resolved is skipped too, never failing the
// whole pass.
func (e *Engine) analyzeItems(filename string, items []syntax.Item, bodyOf func(syntax.Item) (*syntax.Node, error)) []tt.Diagnostic {
	var wg sync.WaitGroup
	results := make([][]tt.Diagnostic, len(items))

	for i, item := range items {
		if item.Kind != syntax.ItemFreeFunction {
			continue
		}
		wg.Add(1)
		go func(i int, item syntax.Item) {
			defer wg.Done()
			body, err := bodyOf(item)
			if err != nil {
				return
			}
			results[i] = e.lintBody(filename, body)
		}(i, item)
	}
	wg.Wait()

	var all []tt.Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	return all
}

// lintBody runs the rules whose trigger kinds occur in the body, in
// rule-name order, then sorts the findings into document order.
func (e *Engine) lintBody(filename string, body *syntax.Node) []tt.Diagnostic {
	present := presentKinds(body)

	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var diags []tt.Diagnostic
	for _, name := range names {
		rule := e.rules[name]
		if e.ignoredRules[rule.Name()] {
			continue
		}
		if !triggered(rule, present) {
			continue
		}
		found, err := rule.Check(filename, body)
		if err != nil {
			continue
		}
		diags = append(diags, found...)
	}

	sortDiagnostics(diags)
	return diags
}

func presentKinds(body *syntax.Node) map[syntax.Kind]bool {
	present := map[syntax.Kind]bool{body.Kind(): true}
	for _, n := range body.Descendants() {
		present[n.Kind()] = true
	}
	return present
}

func triggered(rule LintRule, present map[syntax.Kind]bool) bool {
	kinds := rule.Triggers()
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if present[k] {
			return true
		}
	}
	return false
}

// sortDiagnostics orders diagnostics by source position; an enclosing
// node sorts before the nodes inside it.
func sortDiagnostics(diags []tt.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		if a.Start.Column != b.Start.Column {
			return a.Start.Column < b.Start.Column
		}
		if a.End.Line != b.End.Line {
			return a.End.Line > b.End.Line
		}
		if a.End.Column != b.End.Column {
			return a.End.Column > b.End.Column
		}
		return a.Rule < b.Rule
	})
}

// Run loads a tree dump from disk and lints every function in it.
func (e *Engine) Run(path string) ([]tt.Diagnostic, error) {
	if e.isIgnoredPath(path) {
		return nil, nil
	}
	if e.cache != nil {
		if diags, ok := e.cache.Get(path); ok {
			return diags, nil
		}
	}
	module, err := treeio.Load(path)
	if err != nil {
		return nil, err
	}
	diags := e.AnalyzeModule(module)
	if e.cache != nil {
		// a failed cache write only costs the next run a relint
		_ = e.cache.Set(path, diags)
	}
	return diags, nil
}

// RunSource lints a YAML tree dump held in memory.
func (e *Engine) RunSource(source []byte) ([]tt.Diagnostic, error) {
	module, err := treeio.Decode(source, treeio.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("error parsing dump: %w", err)
	}
	return e.AnalyzeModule(module), nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath excludes a dump file, or everything under a directory,
// from Run.
func (e *Engine) IgnorePath(path string) {
	if e.ignoredPaths == nil {
		e.ignoredPaths = trie.New()
	}
	e.ignoredPaths.Insert(splitPath(path))
}

func (e *Engine) isIgnoredPath(path string) bool {
	if e.ignoredPaths == nil {
		return false
	}
	return e.ignoredPaths.ContainsPrefixOf(splitPath(path))
}

// splitPath breaks a cleaned path into the segments the ignore trie is
// keyed on.
func splitPath(path string) []string {
	return strings.Split(filepath.Clean(path), string(filepath.Separator))
}

// EnableCache makes Run keep its results in a persistent cache under
// cacheDir, keyed by dump path and invalidated when the dump or any of
// the dependency files change. The configuration file is the usual
// dependency, so a severity edit drops every stale entry.
func (e *Engine) EnableCache(cacheDir string, dependencies ...string) error {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return err
	}
	if err := cache.SetDependencies(dependencies...); err != nil {
		return err
	}
	e.cache = cache
	return nil
}

// cacheSource remembers a module's source text so formatters can show
// snippets without re-reading Cairo files that may not exist next to
// the dumps.
func (e *Engine) cacheSource(filename, source string) {
	if filename == "" || source == "" {
		return
	}
	e.srcMu.Lock()
	e.sources[filename] = NewSourceCode(source)
	e.srcMu.Unlock()
}

// SourceCodeFor returns the source text of a file seen during an
// earlier Run or Analyze call.
func (e *Engine) SourceCodeFor(filename string) (*SourceCode, bool) {
	e.srcMu.RLock()
	defer e.srcMu.RUnlock()
	sc, ok := e.sources[filename]
	return sc, ok
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// NewSourceCode splits source text into lines.
func NewSourceCode(source string) *SourceCode {
	return &SourceCode{Lines: strings.Split(source, "\n")}
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

package syntax

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ModuleID identifies a module within a database, typically the
// module's fully qualified path (`geometry` or `core::ops`).
type ModuleID string

// ItemID identifies a single item across the whole database. Frontends
// qualify it with the module path (`geometry::area`) so items from
// different modules never collide.
type ItemID string

// Item is a top-level declaration of a module. Only function-shaped
// items are modeled; the analysis skips everything else at scan time.
type Item struct {
	ID   ItemID
	Name string
	Kind Kind
	Body *Node
}

// Module is one parsed source module as the frontend dumped it. Path
// is the source file the tree was parsed from; Source is that file's
// text, carried along so diagnostics can show snippets without
// touching the filesystem.
type Module struct {
	ID     ModuleID
	Path   string
	Source string
	Items  []Item
}

var (
	// ErrModuleNotFound reports a lookup of a module the database has
	// never seen.
	ErrModuleNotFound = errors.New("syntax: module not found")
	// ErrItemNotFound reports a body lookup for an unknown item.
	ErrItemNotFound = errors.New("syntax: item not found")
	// ErrNoBody reports a body lookup on an item that has none, such
	// as an extern function.
	ErrNoBody = errors.New("syntax: item has no body")
)

// DB is the read side of a syntax database. Lookups are cheap and may
// be called concurrently; implementations must not mutate returned
// values after handing them out.
type DB interface {
	// Module returns the module with the given ID.
	Module(id ModuleID) (*Module, error)
	// ModuleItems returns the module's items in declaration order.
	ModuleItems(id ModuleID) ([]Item, error)
	// FunctionBody returns the body tree of a function item. It fails
	// with ErrNoBody for items that declare no body.
	FunctionBody(id ItemID) (*Node, error)
}

// MemoryDB is an in-memory DB populated from frontend dumps. It is
// safe for concurrent use; AddModule may race with lookups from other
// goroutines.
type MemoryDB struct {
	mu      sync.RWMutex
	modules map[ModuleID]*Module
	items   map[ItemID]Item
}

// NewMemoryDB returns an empty database.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		modules: make(map[ModuleID]*Module),
		items:   make(map[ItemID]Item),
	}
}

// AddModule registers a module and indexes its items. Re-adding a
// module ID replaces the previous registration, dropping its old item
// index entries first.
func (db *MemoryDB) AddModule(m *Module) error {
	if m == nil {
		return errors.New("syntax: nil module")
	}
	if m.ID == "" {
		return errors.New("syntax: module has empty ID")
	}
	seen := make(map[ItemID]struct{}, len(m.Items))
	for _, it := range m.Items {
		if it.ID == "" {
			return fmt.Errorf("syntax: module %s: item %q has empty ID", m.ID, it.Name)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("syntax: module %s: duplicate item ID %s", m.ID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if old, ok := db.modules[m.ID]; ok {
		for _, it := range old.Items {
			delete(db.items, it.ID)
		}
	}
	db.modules[m.ID] = m
	for _, it := range m.Items {
		db.items[it.ID] = it
	}
	return nil
}

// Module implements DB.
func (db *MemoryDB) Module(id ModuleID) (*Module, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	m, ok := db.modules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}
	return m, nil
}

// ModuleItems implements DB. The returned slice is a copy and may be
// reordered or filtered by the caller.
func (db *MemoryDB) ModuleItems(id ModuleID) ([]Item, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	m, ok := db.modules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}
	items := make([]Item, len(m.Items))
	copy(items, m.Items)
	return items, nil
}

// FunctionBody implements DB.
func (db *MemoryDB) FunctionBody(id ItemID) (*Node, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	it, ok := db.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if it.Body == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBody, id)
	}
	return it.Body, nil
}

// Modules returns the IDs of every registered module, sorted.
func (db *MemoryDB) Modules() []ModuleID {
	db.mu.RLock()
	defer db.mu.RUnlock()
	ids := make([]ModuleID, 0, len(db.modules))
	for id := range db.modules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

package byteable

import (
	"reflect"
	"sync"
)

// Layout compilation consults the enum registry, so the two caches are
// guarded separately: For holds layoutMu while compiling, and lookupEnum
// only ever takes enumMu.
var (
	layouts  = make(map[reflect.Type]any)
	layoutMu sync.RWMutex

	enums  = make(map[reflect.Type]*enumTable)
	enumMu sync.RWMutex
)

// For returns the cached layout for T, compiling it on first use.
// Compilation is the generation step: all schema defects are reported here
// and never from Marshal/Unmarshal. The compiled layout is immutable and
// safe for concurrent use.
func For[T any]() (*Layout[T], error) {
	rt := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	layoutMu.RLock()
	if cached, ok := layouts[rt]; ok {
		layoutMu.RUnlock()
		return cached.(*Layout[T]), nil
	}
	layoutMu.RUnlock()

	// Slow path: compile and cache with write-lock
	layoutMu.Lock()
	defer layoutMu.Unlock()

	// Double-check pattern
	if cached, ok := layouts[rt]; ok {
		return cached.(*Layout[T]), nil
	}

	layout, err := compileLayout[T]()
	if err != nil {
		return nil, err
	}

	layouts[rt] = layout
	return layout, nil
}

// MustFor is For that panics on schema errors. Intended for package-level
// variables, where a schema defect should stop the program at startup.
func MustFor[T any]() *Layout[T] {
	layout, err := For[T]()
	if err != nil {
		panic(err)
	}
	return layout
}

// Reset clears the layout cache and the enum registry.
// This is primarily useful for test isolation.
func Reset() {
	layoutMu.Lock()
	layouts = make(map[reflect.Type]any)
	layoutMu.Unlock()

	enumMu.Lock()
	enums = make(map[reflect.Type]*enumTable)
	enumMu.Unlock()
}

// storeEnum records a registered enum table, rejecting redefinition.
func storeEnum(rt reflect.Type, table *enumTable) error {
	enumMu.Lock()
	defer enumMu.Unlock()
	if _, exists := enums[rt]; exists {
		return newSchemaError(ErrEnumRedefined, table.typeName, "", "")
	}
	enums[rt] = table
	return nil
}

// lookupEnum returns the discriminant table for a registered enum type.
func lookupEnum(rt reflect.Type) (*enumTable, bool) {
	enumMu.RLock()
	defer enumMu.RUnlock()
	table, ok := enums[rt]
	return table, ok
}

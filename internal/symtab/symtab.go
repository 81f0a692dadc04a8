// Package symtab implements the flat symbol table mapping declared
// variable names to memory addresses.
package symtab

import "fmt"

// Table maps declared names to consecutive addresses starting at 0, in
// declaration order. The program has a single flat scope, so there is no
// nesting. After parsing the table is consumed read-only.
type Table struct {
	names []string
	addrs map[string]int
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		names: make([]string, 0),
		addrs: make(map[string]int),
	}
}

// Declare adds name to the table and returns its address. If the name is
// already declared, the original address is returned along with an error;
// the table is unchanged.
func (t *Table) Declare(name string) (int, error) {
	if addr, ok := t.addrs[name]; ok {
		return addr, fmt.Errorf("variable %q already declared", name)
	}
	addr := len(t.names)
	t.names = append(t.names, name)
	t.addrs[name] = addr
	return addr, nil
}

// Resolve returns the address of name and whether it is declared.
func (t *Table) Resolve(name string) (int, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// Size returns the number of declared variables, which is also the memory
// size the generated program allocates.
func (t *Table) Size() int {
	return len(t.names)
}

// Names returns the declared names in declaration order. The returned
// slice is a copy.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

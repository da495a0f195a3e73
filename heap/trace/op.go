// Package trace replays allocator scripts against a heap.
//
// A script has one operation per line:
//
//	alloc <name> <bytes>   allocate and bind the address to name
//	free <name>            free the address bound to name
//	grow <pages>           append pages to the heap
//	print                  print heap stats
//	check                  validate every heap invariant
//
// Blank lines and lines starting with # are ignored.
package trace

import "fmt"

// Kind identifies an operation.
type Kind int

const (
	OpAlloc Kind = iota + 1
	OpFree
	OpGrow
	OpPrint
	OpCheck
)

var kindNames = map[Kind]string{
	OpAlloc: "alloc",
	OpFree:  "free",
	OpGrow:  "grow",
	OpPrint: "print",
	OpCheck: "check",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Op is one parsed script line.
type Op struct {
	Line int    // 1-based line number in the script
	Kind Kind
	Name string // alloc, free
	N    int    // bytes for alloc, pages for grow
}

func (o Op) String() string {
	switch o.Kind {
	case OpAlloc:
		return fmt.Sprintf("alloc %s %d", o.Name, o.N)
	case OpFree:
		return fmt.Sprintf("free %s", o.Name)
	case OpGrow:
		return fmt.Sprintf("grow %d", o.N)
	}
	return o.Kind.String()
}

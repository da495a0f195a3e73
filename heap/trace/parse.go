package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const commentPrefix = "#"

var (
	// ErrSyntax indicates a malformed script line.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownName indicates a free of a name no alloc bound.
	ErrUnknownName = errors.New("trace: unknown name")
)

// Parse reads a script. Errors name the offending line.
func Parse(r io.Reader) ([]Op, error) {
	scanner := bufio.NewScanner(r)
	var ops []Op
	line := 0
	for scanner.Scan() {
		line++
		trim := strings.TrimSpace(scanner.Text())
		if trim == "" || strings.HasPrefix(trim, commentPrefix) {
			continue
		}
		op, err := parseLine(trim)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: read script: %w", err)
	}
	return ops, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Op, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "alloc":
		if len(fields) != 3 {
			return Op{}, fmt.Errorf("%w: want \"alloc <name> <bytes>\", got %q", ErrSyntax, line)
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return Op{}, fmt.Errorf("%w: bad byte count %q", ErrSyntax, fields[2])
		}
		return Op{Kind: OpAlloc, Name: fields[1], N: n}, nil
	case "free":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%w: want \"free <name>\", got %q", ErrSyntax, line)
		}
		return Op{Kind: OpFree, Name: fields[1]}, nil
	case "grow":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%w: want \"grow <pages>\", got %q", ErrSyntax, line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Op{}, fmt.Errorf("%w: bad page count %q", ErrSyntax, fields[1])
		}
		return Op{Kind: OpGrow, N: n}, nil
	case "print", "check":
		if len(fields) != 1 {
			return Op{}, fmt.Errorf("%w: %s takes no arguments", ErrSyntax, fields[0])
		}
		if fields[0] == "print" {
			return Op{Kind: OpPrint}, nil
		}
		return Op{Kind: OpCheck}, nil
	}
	return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, fields[0])
}

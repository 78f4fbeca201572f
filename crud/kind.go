package crud

import (
	"fmt"
	"strings"
)

// Kind identifies which CRUD routine is generated.
type Kind int

const (
	Insert Kind = iota
	Update
	Delete
	Select
)

// AllKinds lists every kind in the order the CLI emits them.
var AllKinds = []Kind{Insert, Update, Delete, Select}

func (k Kind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	case Select:
		return "Select"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name case-insensitively. "filter" is accepted as
// an alias of Select.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert", "create":
		return Insert, nil
	case "update":
		return Update, nil
	case "delete":
		return Delete, nil
	case "select", "filter", "read":
		return Select, nil
	}
	return 0, fmt.Errorf("unsupported operation kind %q (expected insert, update, delete or select)", s)
}

// ParseKinds parses a list of kind names, dropping duplicates while keeping
// first-seen order.
func ParseKinds(names []string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

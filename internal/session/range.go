package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Range expressions pick objects out of the last listing by 0-based index.
// The grammar is a comma-separated list of items, each one of:
//
//	*        every listed object
//	N        a single index
//	N-M      an inclusive ascending slice
//
// Duplicate picks collapse; the result is always in listing order.

// parseRangeExpr resolves expr against a listing of n objects and returns
// the selected indices, ascending and without duplicates.
func parseRangeExpr(expr string, n int) ([]int, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, &RangeError{Expr: expr, Reason: "empty expression"}
	}
	if n == 0 {
		return nil, &RangeError{Expr: expr, Reason: "no objects have been listed"}
	}

	picked := make(map[int]struct{})
	for _, item := range strings.Split(trimmed, ",") {
		item = strings.TrimSpace(item)
		switch {
		case item == "":
			return nil, &RangeError{Expr: expr, Reason: "empty item"}
		case item == "*":
			for i := 0; i < n; i++ {
				picked[i] = struct{}{}
			}
		case strings.Contains(item, "-"):
			parts := strings.SplitN(item, "-", 2)
			lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("bad index %q", parts[0])}
			}
			hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("bad index %q", parts[1])}
			}
			if hi < lo {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("descending slice %d-%d", lo, hi)}
			}
			if lo < 0 || hi >= n {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("slice %d-%d out of range (have %d objects)", lo, hi, n)}
			}
			for i := lo; i <= hi; i++ {
				picked[i] = struct{}{}
			}
		default:
			idx, err := strconv.Atoi(item)
			if err != nil {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("bad index %q", item)}
			}
			if idx < 0 || idx >= n {
				return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("index %d out of range (have %d objects)", idx, n)}
			}
			picked[idx] = struct{}{}
		}
	}

	idxs := make([]int, 0, len(picked))
	for i := range picked {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs, nil
}

// LooksLikeRange reports whether input could be a range expression rather
// than a command name. The dispatcher uses this to route bare expressions
// like "0-2,4" or "*" to range selection.
func LooksLikeRange(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r == ',' || r == '-' || r == '*' || r == ' ':
		default:
			return false
		}
	}
	return true
}

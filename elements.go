package acis

import (
	"fmt"
	"strings"
)

// makeElement normalizes a single entry of an "elems" param. An element can
// be a bare name, a var major (vX) code, or an options object containing one
// of those.
func makeElement(value any) Params {
	switch v := value.(type) {
	case string:
		return Params{"name": v}
	case int:
		return Params{"vX": v}
	case float64: // decoded JSON number
		return Params{"vX": int(v)}
	case Params:
		return v
	case map[string]any:
		return Params(v)
	}
	return Params{}
}

// elementAlias returns the alias for an element: its name, or "vxnn" for a
// var major element.
func elementAlias(elem Params) string {
	if name, ok := elem["name"].(string); ok {
		return name
	}
	switch vx := elem["vX"].(type) {
	case int:
		return fmt.Sprintf("vx%02d", vx)
	case float64:
		return fmt.Sprintf("vx%02d", int(vx))
	}
	return ""
}

// resultElems derives the element aliases for a result from the params that
// produced it. Duplicate aliases are annotated with an index so every column
// is unique, e.g. maxt0, maxt1.
func resultElems(params Params) []string {
	var aliases []string
	switch elems := params["elems"].(type) {
	case string:
		aliases = append(aliases, splitNames(elems)...)
	case []string:
		aliases = append(aliases, elems...)
	case []Params:
		for _, elem := range elems {
			aliases = append(aliases, elementAlias(elem))
		}
	case []any:
		for _, value := range elems {
			aliases = append(aliases, elementAlias(makeElement(value)))
		}
	}
	return annotate(aliases)
}

// annotate makes duplicate items in a sequence unique by appending each
// duplicate's occurrence index. The original order is preserved.
func annotate(items []string) []string {
	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[item]++
	}
	seen := make(map[string]int, len(items))
	annotated := make([]string, len(items))
	for i, item := range items {
		if counts[item] > 1 {
			annotated[i] = fmt.Sprintf("%s%d", item, seen[item])
			seen[item]++
		} else {
			annotated[i] = item
		}
	}
	return annotated
}

// splitNames splits a comma-delimited name list, trimming whitespace.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

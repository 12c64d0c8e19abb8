// Package binding fills ${path} placeholders in share titles and captions
// from a poster's caption data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate replaces every ${path.to.value} in text with the value found
// in data. A path may carry a fallback after a pipe, as in ${code|s/n},
// used when the value is missing or blank. Unresolved placeholders without
// a fallback are left as they are.
func Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path, fallback, hasFallback := splitExpr(match)
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			if s := format(val); s != "" || !hasFallback {
				return s
			}
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// Missing lists the placeholder paths in text that data cannot resolve and
// that have no fallback, in order of appearance.
func Missing(text string, data any) []string {
	var out []string
	for _, match := range exprPattern.FindAllString(text, -1) {
		path, _, hasFallback := splitExpr(match)
		if path == "" || hasFallback {
			continue
		}
		if _, ok := resolvePath(data, path); !ok {
			out = append(out, path)
		}
	}
	return out
}

func splitExpr(match string) (path, fallback string, hasFallback bool) {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return "", "", false
	}
	expr := groups[1]
	if i := strings.IndexByte(expr, '|'); i != -1 {
		return strings.TrimSpace(expr[:i]), strings.TrimSpace(expr[i+1:]), true
	}
	return strings.TrimSpace(expr), "", false
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "sim"
		}
		return "não"
	default:
		return fmt.Sprint(v)
	}
}

func resolvePath(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// parseSegment splits "jobs[0]" into "jobs" and ["0"].
func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}

package routes

import (
	"sort"
	"strings"
)

// RouteKey is the reserved key holding a pattern inside a RouteMap.
const RouteKey = "route"

// RouteMap is a nested lookup mirroring the route hierarchy. Values are
// either nested RouteMaps or, under RouteKey, the literal pattern.
type RouteMap map[string]any

// BuildRouteMap deep-sets every pattern under its sanitized segment path.
// Parameter segments lose their marker, so "/posts/:id" lands at
// posts.id.route. When two patterns map to the same key path the later one
// wins.
func BuildRouteMap(patterns []string, table *Replacements) RouteMap {
	root := RouteMap{}
	for _, pattern := range patterns {
		if !IsClassifiable(pattern) {
			continue
		}
		root.Set(append(MapKeys(pattern, table), RouteKey), pattern)
	}
	return root
}

// MapKeys returns the sanitized key path of a pattern, without RouteKey.
// A segment spelled like RouteKey gets a trailing "_" so it cannot collide
// with the pattern stored at its parent ("/route" lands at route_.route).
func MapKeys(pattern string, table *Replacements) []string {
	var keys []string
	for _, segment := range strings.Split(pattern, "/") {
		if segment == "" {
			continue
		}
		keys = append(keys, escapeKey(table.Sanitize(segmentName(segment))))
	}
	return keys
}

// escapeKey maps "route", "route_", "route__" ... one "_" further so the
// escape stays reversible.
func escapeKey(key string) string {
	if strings.TrimRight(key, "_") == RouteKey {
		return key + "_"
	}
	return key
}

// segmentName strips parameter markers from a pattern segment.
func segmentName(segment string) string {
	switch segment[0] {
	case ':':
		return strings.TrimSuffix(segment[1:], "?")
	case '*':
		return segment[1:]
	}
	return segment
}

// Set stores value at the key path, creating intermediate maps. A leaf
// standing where a map is needed is replaced.
func (m RouteMap) Set(keys []string, value string) {
	if len(keys) == 0 {
		return
	}
	current := m
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(RouteMap)
		if !ok {
			next = RouteMap{}
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// Lookup returns the pattern stored under the key path. Keys are map keys
// as produced by MapKeys.
func (m RouteMap) Lookup(keys ...string) (string, bool) {
	current := m
	for _, key := range keys {
		next, ok := current[key].(RouteMap)
		if !ok {
			return "", false
		}
		current = next
	}
	pattern, ok := current[RouteKey].(string)
	return pattern, ok
}

// Keys returns the map's keys sorted.
func (m RouteMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

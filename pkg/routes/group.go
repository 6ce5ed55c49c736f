package routes

import "net/http"

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux and returns the
// registered ServeMux patterns in declaration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	walk(groups, func(pattern string, route Route) {
		mux.HandleFunc(pattern, route.Handler)
		patterns = append(patterns, pattern)
	})
	return patterns
}

// Patterns returns the ServeMux patterns the groups would register.
func Patterns(groups ...Group) []string {
	var patterns []string
	walk(groups, func(pattern string, _ Route) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

func walk(groups []Group, fn func(pattern string, route Route)) {
	for _, group := range groups {
		walkGroup("", group, fn)
	}
}

func walkGroup(parentPrefix string, group Group, fn func(string, Route)) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		fn(route.pattern(fullPrefix), route)
	}
	for _, child := range group.Children {
		walkGroup(fullPrefix, child, fn)
	}
}

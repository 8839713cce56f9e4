package routes

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildRouteMap(t *testing.T) {
	m := BuildRouteMap([]string{
		"/",
		"/posts",
		"/posts/:id",
		"/docs/*rest",
		"/files/:file.name?",
		"/broken/",
	}, NewReplacements(nil))

	tests := []struct {
		keys []string
		want string
	}{
		{nil, "/"},
		{[]string{"posts"}, "/posts"},
		{[]string{"posts", "id"}, "/posts/:id"},
		{[]string{"docs", "rest"}, "/docs/*rest"},
		{[]string{"files", "file_dot_name"}, "/files/:file.name?"},
	}

	for _, tt := range tests {
		got, ok := m.Lookup(tt.keys...)
		if !ok {
			t.Errorf("Lookup(%v) not found", tt.keys)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%v) = %q, want %q", tt.keys, got, tt.want)
		}
	}

	if _, ok := m.Lookup("broken"); ok {
		t.Error("incomplete pattern should not be mapped")
	}
}

func TestBuildRouteMap_Nested(t *testing.T) {
	m := BuildRouteMap([]string{"/posts/:id"}, NewReplacements(nil))

	posts, ok := m["posts"].(RouteMap)
	if !ok {
		t.Fatalf("m[posts] = %T, want RouteMap", m["posts"])
	}
	id, ok := posts["id"].(RouteMap)
	if !ok {
		t.Fatalf("posts[id] = %T, want RouteMap", posts["id"])
	}
	if id[RouteKey] != "/posts/:id" {
		t.Errorf("posts.id.route = %v, want /posts/:id", id[RouteKey])
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"posts":{"id":{"route":"/posts/:id"}}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestBuildRouteMap_LastWriteWins(t *testing.T) {
	m := BuildRouteMap([]string{"/posts/:id", "/posts/*id"}, NewReplacements(nil))

	got, _ := m.Lookup("posts", "id")
	if got != "/posts/*id" {
		t.Errorf("Lookup(posts, id) = %q, want the later pattern /posts/*id", got)
	}
}

func TestRouteMap_Keys(t *testing.T) {
	m := BuildRouteMap([]string{"/b", "/a", "/c/d"}, NewReplacements(nil))

	keys := m.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestBuildRouteMap_RouteSegment(t *testing.T) {
	table := NewReplacements(nil)

	for _, patterns := range [][]string{
		{"/", "/route", "/route_/x"},
		{"/route_/x", "/route", "/"},
	} {
		m := BuildRouteMap(patterns, table)

		if got, ok := m.Lookup(); !ok || got != "/" {
			t.Errorf("%v: root = %q, %v", patterns, got, ok)
		}
		if got, ok := m.Lookup(MapKeys("/route", table)...); !ok || got != "/route" {
			t.Errorf("%v: /route = %q, %v", patterns, got, ok)
		}
		if got, ok := m.Lookup(MapKeys("/route_/x", table)...); !ok || got != "/route_/x" {
			t.Errorf("%v: /route_/x = %q, %v", patterns, got, ok)
		}
	}
}

func TestMapKeys_EscapesRouteKey(t *testing.T) {
	table := NewReplacements(nil)

	got := strings.Join(MapKeys("/route/:route/route_/routes", table), ".")
	if want := "route_.route_.route__.routes"; got != want {
		t.Errorf("MapKeys() = %q, want %q", got, want)
	}
}

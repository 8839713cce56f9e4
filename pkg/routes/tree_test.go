package routes

import (
	"testing"
)

func entry(id, pattern, payload string) Entry {
	return Entry{ID: id, Pattern: pattern, Payload: payload}
}

func TestBuildTree_Nesting(t *testing.T) {
	forest := BuildTree([]Entry{
		entry("/posts/:id", "/posts/:id", "post"),
		entry("/posts", "/posts", "posts"),
	}, DefaultTreeOptions)

	if len(forest) != 1 {
		t.Fatalf("len(forest) = %d, want 1", len(forest))
	}
	root := forest[0]
	if root.ID != "/posts" || root.Pattern != "/posts" {
		t.Errorf("root = %+v, want /posts", root)
	}
	if len(root.Children) != 1 {
		t.Fatalf("len(root.Children) = %d, want 1", len(root.Children))
	}
	child := root.Children[0]
	if child.ID != "/posts/:id" {
		t.Errorf("child.ID = %q, want /posts/:id", child.ID)
	}
	if child.Pattern != "/:id" {
		t.Errorf("child.Pattern = %q, want /:id", child.Pattern)
	}
}

func TestBuildTree_Deep(t *testing.T) {
	forest := BuildTree([]Entry{
		entry("users/[id]/posts/[postId]", "/users/:id/posts/:postId", "post"),
		entry("users", "/users", "users"),
		entry("about", "/about", "about"),
		entry("users/[id]", "/users/:id", "user"),
		entry("index", "/", "home"),
	}, DefaultTreeOptions)

	if len(forest) != 3 {
		t.Fatalf("len(forest) = %d, want 3", len(forest))
	}

	// shortest ids first, ties keep input order
	wantRoots := []string{"users", "about", "index"}
	for i, id := range wantRoots {
		if forest[i].ID != id {
			t.Errorf("forest[%d].ID = %q, want %q", i, forest[i].ID, id)
		}
	}

	users := forest[0]
	if len(users.Children) != 1 || users.Children[0].ID != "users/[id]" {
		t.Fatalf("users children = %+v", users.Children)
	}
	user := users.Children[0]
	if user.Pattern != "/:id" {
		t.Errorf("user.Pattern = %q, want /:id", user.Pattern)
	}
	if len(user.Children) != 1 {
		t.Fatalf("len(user.Children) = %d, want 1", len(user.Children))
	}
	if got := user.Children[0].Pattern; got != "/posts/:postId" {
		t.Errorf("post.Pattern = %q, want /posts/:postId", got)
	}
}

func TestBuildTree_Groups(t *testing.T) {
	forest := BuildTree([]Entry{
		entry("(auth)", "/", ""),
		entry("(auth)/login", "/login", "login"),
		entry("(auth)/register", "/register", "register"),
		entry("(marketing)", "/", ""),
	}, DefaultTreeOptions)

	// (marketing) is a layout-only entry without descendants and is pruned.
	if len(forest) != 1 {
		t.Fatalf("len(forest) = %d, want 1: %+v", len(forest), forest)
	}
	group := forest[0]
	if group.ID != "(auth)" || group.Payload != "" {
		t.Errorf("group = %+v", group)
	}
	if len(group.Children) != 2 {
		t.Fatalf("len(group.Children) = %d, want 2", len(group.Children))
	}
	if group.Children[0].Pattern != "/login" {
		t.Errorf("child pattern = %q, want /login", group.Children[0].Pattern)
	}
}

func TestBuildTree_Policies(t *testing.T) {
	entries := []Entry{
		entry("posts", "/posts", ""),
		entry("posts/index", "/posts", "index"),
		entry("layout", "/layout", ""),
	}

	forest := BuildTree(entries, TreeOptions{})
	if len(forest) != 2 {
		t.Fatalf("without pruning len(forest) = %d, want 2", len(forest))
	}
	if got := forest[0].Children[0].Pattern; got != "/posts" {
		t.Errorf("without stripping child pattern = %q, want /posts", got)
	}

	forest = BuildTree(entries, DefaultTreeOptions)
	if len(forest) != 1 {
		t.Fatalf("with pruning len(forest) = %d, want 1", len(forest))
	}
	if got := forest[0].Children[0].Pattern; got != "/" {
		t.Errorf("index child pattern = %q, want /", got)
	}
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		entry("a/b", "/a/b", "b"),
		entry("a", "/a", "a"),
	}
	BuildTree(entries, DefaultTreeOptions)

	if entries[0].ID != "a/b" || entries[0].Pattern != "/a/b" {
		t.Errorf("input was modified: %+v", entries)
	}
}

func TestBuildTree_SiblingPrefix(t *testing.T) {
	// "postsarchive" shares a string prefix with "posts" but is not a child.
	forest := BuildTree([]Entry{
		entry("posts", "/posts", "posts"),
		entry("postsarchive", "/postsarchive", "archive"),
	}, DefaultTreeOptions)

	if len(forest) != 2 {
		t.Errorf("len(forest) = %d, want 2", len(forest))
	}
}

func TestWalk(t *testing.T) {
	forest := BuildTree([]Entry{
		entry("a", "/a", "a"),
		entry("a/b", "/a/b", "b"),
		entry("c", "/c", "c"),
	}, DefaultTreeOptions)

	var visited []string
	var depths []int
	Walk(forest, func(n *Node, depth int) {
		visited = append(visited, n.ID)
		depths = append(depths, depth)
	})

	want := []string{"a", "a/b", "c"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
	if depths[1] != 1 {
		t.Errorf("depth of a/b = %d, want 1", depths[1])
	}
}

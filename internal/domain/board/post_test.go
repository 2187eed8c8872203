package board

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIdentitySetToggle(t *testing.T) {
	s := IdentitySet{}
	s, added := s.Toggle("a")
	if !added || len(s) != 1 || !s.Contains("a") {
		t.Fatalf("first toggle: added=%v set=%v", added, s)
	}
	s, added = s.Toggle("b")
	if !added || len(s) != 2 {
		t.Fatalf("second toggle: added=%v set=%v", added, s)
	}
	s, added = s.Toggle("a")
	if added || len(s) != 1 || s.Contains("a") {
		t.Fatalf("untoggle: added=%v set=%v", added, s)
	}
}

func TestIdentitySetToggleCollapsesDuplicates(t *testing.T) {
	s := IdentitySet{"x", "x", "y"}
	out, added := s.Toggle("z")
	if !added || len(out) != 3 {
		t.Fatalf("want [x y z], got %v", out)
	}
}

func TestIdentitySetRoundTrip(t *testing.T) {
	in := IdentitySet{"a", "b,c", `d"e`}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out IdentitySet
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 3 || out[1] != "b,c" || out[2] != `d"e` {
		t.Fatalf("round trip mismatch: %#v", out)
	}

	var empty IdentitySet
	v, err = empty.Value()
	if err != nil || v != "{}" {
		t.Fatalf("nil set Value=%v,%v", v, err)
	}
}

func TestIsAllCategory(t *testing.T) {
	for _, c := range []string{"", "all", "Todos", " TODOS "} {
		if !IsAllCategory(c) {
			t.Fatalf("%q should be all", c)
		}
	}
	if IsAllCategory("Amor") {
		t.Fatalf("Amor is a real category")
	}
}

func TestIdentitySetDedup(t *testing.T) {
	out := IdentitySet{"a", "", "b", "a", "b"}.Dedup()
	if len(out) != 2 || out[0] != "a" || out[1] != "b" {
		t.Fatalf("unexpected dedup result: %v", out)
	}
	if got := IdentitySet(nil).Dedup(); got == nil || len(got) != 0 {
		t.Fatalf("nil set should dedup to empty, got %#v", got)
	}
}

func TestPostJSONHidesIdentities(t *testing.T) {
	raw, err := json.Marshal(Post{UserHash: "author", LikedBy: IdentitySet{"fan"}, LikesCount: 1, Liked: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, leak := range []string{"author", "fan", "user_hash", "liked_by", "version"} {
		if strings.Contains(body, leak) {
			t.Fatalf("%q leaked in %s", leak, body)
		}
	}
	if !strings.Contains(body, `"liked":true`) {
		t.Fatalf("liked flag missing: %s", body)
	}
}

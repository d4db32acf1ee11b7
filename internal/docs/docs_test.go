package docs

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics()
	if len(topics) < 4 {
		t.Fatalf("expected at least 4 topics, got %d", len(topics))
	}
	for i, tp := range topics {
		if tp.Body != "" {
			t.Fatalf("Topics should not carry bodies: %q", tp.Name)
		}
		if tp.Title == "" || tp.Title == tp.Name {
			t.Fatalf("expected a title from the heading for %q", tp.Name)
		}
		if i > 0 && topics[i-1].Name > tp.Name {
			t.Fatalf("topics not sorted: %q before %q", topics[i-1].Name, tp.Name)
		}
	}
}

func TestGet(t *testing.T) {
	tp, ok := Get(" Locations ")
	if !ok || tp.Title != "Locations" || tp.Body == "" {
		t.Fatalf("Get(locations) = %#v, %v", tp, ok)
	}
	for _, name := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(name); ok {
			t.Fatalf("Get(%q) should fail", name)
		}
	}
}

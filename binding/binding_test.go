package binding

import "testing"

func sampleData() map[string]any {
	return map[string]any{
		"user": map[string]any{"name": "Ada"},
		"items": []any{
			map[string]any{"name": "a", "w": float64(80), "h": "30"},
			map[string]any{"name": "b", "w": float64(120), "h": float64(40)},
		},
	}
}

func TestInterpolate(t *testing.T) {
	data := sampleData()
	if got := Interpolate("hi ${user.name}, ${items[1].name}", data); got != "hi Ada, b" {
		t.Fatalf("unexpected interpolation: %q", got)
	}
	if got := Interpolate("${missing.path}", data); got != "${missing.path}" {
		t.Fatalf("missing path should keep the placeholder, got %q", got)
	}
	if got := Interpolate("${user.name}", nil); got != "${user.name}" {
		t.Fatalf("nil data should keep the text, got %q", got)
	}
}

func TestNumberAndSlice(t *testing.T) {
	data := sampleData()
	items, ok := Slice(data, "items")
	if !ok || len(items) != 2 {
		t.Fatalf("Slice(items) = %v, %v", items, ok)
	}
	scope := With(data, "item", items[0])
	if w, ok := Number(scope, "item.w"); !ok || w != 80 {
		t.Fatalf("Number(item.w) = %v, %v", w, ok)
	}
	if h, ok := Number(scope, "item.h"); !ok || h != 30 {
		t.Fatalf("numeric strings should resolve, got %v, %v", h, ok)
	}
	if _, ok := Number(scope, "item.name"); ok {
		t.Fatalf("non-numeric string should not resolve as a number")
	}
	if _, ok := Slice(data, "user"); ok {
		t.Fatalf("object should not resolve as a slice")
	}
	if _, ok := Resolve(data, "items[5]"); ok {
		t.Fatalf("out of range index should not resolve")
	}
	if _, ok := scope["user"]; !ok {
		t.Fatalf("With should keep the outer scope")
	}
}

package engine

import "testing"

func TestValueAt(t *testing.T) {
	root := map[string]any{
		"text": "hello",
		"data": map[string]any{
			"items": []any{
				map[string]any{"value": "a"},
				map[string]any{"value": "b"},
			},
		},
		"results": []any{
			map[string]any{
				"alternatives": []any{
					map[string]any{"transcript": "ok"},
				},
			},
		},
	}

	if v, ok := valueAt(root, "data.items[1].value"); !ok || v != "b" {
		t.Fatalf("expected b, got %v (ok=%v)", v, ok)
	}
	if v, ok := valueAt(root, "results[0].alternatives[0].transcript"); !ok || v != "ok" {
		t.Fatalf("expected ok, got %v (ok=%v)", v, ok)
	}
	if _, ok := valueAt(root, "data.items[99].value"); ok {
		t.Fatal("expected not found for out-of-range index")
	}
	if _, ok := valueAt(root, "missing.key"); ok {
		t.Fatal("expected not found for missing key")
	}
}

func TestSplitToken(t *testing.T) {
	key, idxs, err := splitToken("foo[0][1]")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if key != "foo" || len(idxs) != 2 || idxs[0] != 0 || idxs[1] != 1 {
		t.Fatalf("unexpected parse result: key=%s idxs=%v", key, idxs)
	}

	if _, _, err := splitToken("foo[]"); err == nil {
		t.Fatal("expected error for empty index")
	}
	if _, _, err := splitToken("foo[1"); err == nil {
		t.Fatal("expected error for unclosed index")
	}
}

func TestExtractTextFallsBackToTextField(t *testing.T) {
	body := []byte(`{"text":"fallback works"}`)
	if got := extractText(body, "no.such.path"); got != "fallback works" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := extractText([]byte("not json"), "text"); got != "" {
		t.Fatalf("expected empty for invalid json, got %q", got)
	}
}

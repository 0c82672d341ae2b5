package article

import "testing"

func TestDefinition_Defaults(t *testing.T) {
	def := Definition("", "")
	if def.Name != IndexName || def.KeyPrefix != KeyPrefix {
		t.Fatalf("unexpected defaults: %+v", def)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("static definition must be valid: %v", err)
	}
	if len(def.Schema) != 2 || def.Schema[0].Name != FieldTitle || def.Schema[1].Name != FieldPrice {
		t.Errorf("unexpected schema: %+v", def.Schema)
	}
	if def.Schema[0].Weight != 1.0 || !def.Schema[0].Sortable || !def.Schema[1].Sortable {
		t.Errorf("title/price flags wrong: %+v", def.Schema)
	}
}

func TestArticle_Validate(t *testing.T) {
	ok := Article{ID: "1", Title: "How to cook", Price: 9.99}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []Article{
		{Title: "x"},
		{ID: "1", Title: "  "},
		{ID: "1", Title: "x", Price: -1},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}

func TestKeys(t *testing.T) {
	if got := (Article{ID: "a"}).Key(); got != "Article:a" {
		t.Errorf("article key = %q", got)
	}
	if got := (Author{ID: "b"}).Key(); got != "Author:b" {
		t.Errorf("author key = %q", got)
	}
}

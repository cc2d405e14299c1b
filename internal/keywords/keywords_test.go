package keywords

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		want        Entry
		wantEncoded string
	}{
		{input: "Poisoner", want: Entry{Canonical: "Poisoner"}, wantEncoded: "Poisoner"},
		{input: "execution | execute | executing", want: Entry{Canonical: "execution", Aliases: []string{"execute", "executing"}}, wantEncoded: "execution | execute | executing"},
		{input: "vote|voting", want: Entry{Canonical: "vote", Aliases: []string{"voting"}}, wantEncoded: "vote | voting"},
		{input: "setup | ", want: Entry{Canonical: "setup"}, wantEncoded: "setup"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := ParseEntry(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseEntry(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if enc := got.Encode(); enc != tt.wantEncoded {
				t.Errorf("Encode() = %q, want %q", enc, tt.wantEncoded)
			}
		})
	}
}

func TestEntry_Terms(t *testing.T) {
	t.Parallel()

	got := ParseEntry("register | registration").Terms()
	if diff := cmp.Diff([]string{"register", "registration"}, got); diff != "" {
		t.Errorf("Terms() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: "highlightOrder: [B, A]\ncategories:\n  - name: A\n    terms: [x]\n  - name: B\n    class: b-class\n    terms: [y]\n",
		},
		{
			name: "no highlight order",
			data: "categories:\n  - name: A\n    terms: [x]\n",
		},
		{
			name:    "no categories",
			data:    "highlightOrder: []\ncategories: []\n",
			wantErr: true,
		},
		{
			name:    "empty terms",
			data:    "categories:\n  - name: A\n    terms: []\n",
			wantErr: true,
		},
		{
			name:    "blank term",
			data:    "categories:\n  - name: A\n    terms: [\"\"]\n",
			wantErr: true,
		},
		{
			name:    "alias without canonical term",
			data:    "categories:\n  - name: A\n    terms: [\"| nominate\", x]\n",
			wantErr: true,
		},
		{
			name:    "separator only",
			data:    "categories:\n  - name: A\n    terms: [\" | \"]\n",
			wantErr: true,
		},
		{
			name:    "term in two categories",
			data:    "categories:\n  - name: Minion\n    terms: [Spy]\n  - name: Extra\n    terms: [Spy]\n",
			wantErr: true,
		},
		{
			name:    "alias repeats a term",
			data:    "categories:\n  - name: A\n    terms: [vote, \"ballot | vote\"]\n",
			wantErr: true,
		},
		{
			name:    "duplicate category",
			data:    "categories:\n  - name: A\n    terms: [x]\n  - name: A\n    terms: [y]\n",
			wantErr: true,
		},
		{
			name:    "unknown category in order",
			data:    "highlightOrder: [Z]\ncategories:\n  - name: A\n    terms: [x]\n",
			wantErr: true,
		},
		{
			name:    "order misses a category",
			data:    "highlightOrder: [A]\ncategories:\n  - name: A\n    terms: [x]\n  - name: B\n    terms: [y]\n",
			wantErr: true,
		},
		{
			name:    "name is not a class",
			data:    "categories:\n  - name: Two words\n    terms: [x]\n",
			wantErr: true,
		},
		{
			name:    "unknown field",
			data:    "categories:\n  - name: A\n    words: [x]\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrVocabulary) {
					t.Errorf("Parse() error = %v, want ErrVocabulary", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
		})
	}
}

func TestVocabulary_HighlightCategories(t *testing.T) {
	t.Parallel()

	v, err := Parse([]byte("highlightOrder: [B, A]\ncategories:\n  - name: A\n    terms: [x]\n  - name: B\n    class: b-class\n    terms: [y, z]\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var names []string
	for _, c := range v.HighlightCategories() {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"B", "A"}, names); diff != "" {
		t.Errorf("HighlightCategories() mismatch (-want +got):\n%s", diff)
	}

	if v.Count() != 3 {
		t.Errorf("Count() = %d, want 3", v.Count())
	}
	if diff := cmp.Diff(map[string]bool{"A": true, "b-class": true}, v.Classes()); diff != "" {
		t.Errorf("Classes() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	v, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	first := v.HighlightCategories()[0]
	if first.Name != "Fabled" {
		t.Errorf("first highlight category = %q, want Fabled", first.Name)
	}
	if _, ok := v.Category("Extra"); !ok {
		t.Error("default vocabulary should define Extra")
	}
	minion, _ := v.Category("Minion")
	found := false
	for _, e := range minion.Entries() {
		if e.Canonical == "Poisoner" {
			found = true
		}
	}
	if !found {
		t.Error("Minion should contain Poisoner")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  - name: Role\n    terms: [Imp]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v.Count() != 1 {
		t.Errorf("Count() = %d, want 1", v.Count())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrVocabularyNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrVocabularyNotFound", err)
	}
}

package displaytree

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// encode returns the generic JSON form of d so tests can check key presence.
func encode(t *testing.T, d Datum) map[string]any {
	t.Helper()
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func decode(t *testing.T, s string) DisplayTree {
	t.Helper()
	tree, err := ReadJSON(strings.NewReader(s))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return tree
}

func TestConvert_LeafOmitsChildrenKey(t *testing.T) {
	tests := []struct {
		name string
		tree DisplayTree
	}{
		{"built leaf", Leaf("root")},
		{"decoded leaf", decode(t, `{"node":{"label":"root","children":[]}}`)},
		{"unlabeled leaf", Unlabeled()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Convert(tt.tree)
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			if d.Children != nil {
				t.Errorf("Children = %v, want nil", d.Children)
			}
			if _, ok := encode(t, d)["children"]; ok {
				t.Error("encoded leaf has a children key")
			}
		})
	}
}

func TestConvert_BranchKeepsChildCount(t *testing.T) {
	for n := 1; n <= 5; n++ {
		kids := make([]DisplayTree, n)
		for i := range kids {
			kids[i] = Leaf("k")
		}
		d, err := Convert(Branch("p", kids...))
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if len(d.Children) != n {
			t.Errorf("len(Children) = %d, want %d", len(d.Children), n)
		}
		children, ok := encode(t, d)["children"].([]any)
		if !ok || len(children) != n {
			t.Errorf("encoded children = %v, want %d entries", children, n)
		}
	}
}

func TestConvert_PreservesOrderAtAllDepths(t *testing.T) {
	tree := Branch("r",
		Branch("a", Leaf("a0"), Leaf("a1"), Branch("a2", Leaf("a2x"), Leaf("a2y"))),
		Leaf("b"),
		Branch("c", Leaf("c0")),
	)

	d, err := Convert(tree)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	var check func(src DisplayTree, got Datum)
	check = func(src DisplayTree, got Datum) {
		if got.Text() != *src.Node.Label {
			t.Errorf("label = %q, want %q", got.Text(), *src.Node.Label)
		}
		if len(src.Node.Children) == 0 {
			return
		}
		if len(got.Children) != len(src.Node.Children) {
			t.Fatalf("%q: %d children, want %d", got.Text(), len(got.Children), len(src.Node.Children))
		}
		for i := range src.Node.Children {
			check(src.Node.Children[i], got.Children[i])
		}
	}
	check(tree, d)
}

func TestConvert_LabelPassthrough(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		want    string
	}{
		{"plain", `{"node":{"label":"x","children":[]}}`, false, "x"},
		{"empty string", `{"node":{"label":"","children":[]}}`, false, ""},
		{"absent", `{"node":{"children":[]}}`, true, ""},
		{"null", `{"node":{"label":null,"children":[]}}`, true, ""},
		{"unicode", `{"node":{"label":"∀ x, p x","children":[]}}`, false, "∀ x, p x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Convert(decode(t, tt.input))
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			if tt.wantNil {
				if d.Label != nil {
					t.Errorf("Label = %q, want absent", *d.Label)
				}
				if _, ok := encode(t, d)["label"]; ok {
					t.Error("encoded datum has a label key")
				}
				return
			}
			if d.Label == nil || *d.Label != tt.want {
				t.Errorf("Label = %v, want %q", d.Label, tt.want)
			}
		})
	}
}

func TestConvert_LabelIsCopied(t *testing.T) {
	tree := Leaf("before")
	d := MustConvert(tree)
	*tree.Node.Label = "after"
	if d.Text() != "before" {
		t.Errorf("datum label changed with source: %q", d.Text())
	}
}

func TestConvert_MalformedChildren(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath []int
	}{
		{"object at root", `{"node":{"label":"r","children":{"node":{"label":"x","children":[]}}}}`, nil},
		{"string at root", `{"node":{"label":"r","children":"nope"}}`, nil},
		{"missing at root", `{"node":{"label":"r"}}`, nil},
		{"missing node", `{}`, nil},
		{"null nested", `{"node":{"label":"r","children":[{"node":{"label":"a","children":[]}},{"node":{"label":"b","children":null}}]}}`, []int{1}},
		{"object deep", `{"node":{"children":[{"node":{"children":[{"node":{"children":{}}}]}}]}}`, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Convert(decode(t, tt.input))
			if err == nil {
				t.Fatal("Convert() succeeded, want error")
			}
			if d.Name != "" || d.Label != nil || d.Children != nil {
				t.Errorf("Convert() returned partial result %+v", d)
			}
			if !errors.Is(err, ErrMalformedTree) {
				t.Errorf("errors.Is(err, ErrMalformedTree) = false for %v", err)
			}
			if !apperrors.Is(err, apperrors.ErrCodeMalformedTree) {
				t.Errorf("error code = %q, want MALFORMED_TREE", apperrors.GetCode(err))
			}
			var mte *MalformedTreeError
			if !errors.As(err, &mte) {
				t.Fatalf("error %T is not *MalformedTreeError", err)
			}
			if len(mte.Path) != len(tt.wantPath) {
				t.Fatalf("Path = %v, want %v", mte.Path, tt.wantPath)
			}
			for i := range tt.wantPath {
				if mte.Path[i] != tt.wantPath[i] {
					t.Errorf("Path = %v, want %v", mte.Path, tt.wantPath)
				}
			}
			if !strings.Contains(err.Error(), "children are not an array") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestConvert_EmptyTreeScenario(t *testing.T) {
	d, err := Convert(decode(t, `{"node":{"label":"root","children":[]}}`))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	got, _ := json.Marshal(d)
	want := `{"name":"node","label":"root"}`
	if string(got) != want {
		t.Errorf("Convert() = %s, want %s", got, want)
	}
}

func TestConvert_TwoLevelScenario(t *testing.T) {
	d, err := Convert(decode(t, `{"node":{"label":"A","children":[{"node":{"label":"B","children":[]}}]}}`))
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	got, _ := json.Marshal(d)
	want := `{"name":"node","label":"A","children":[{"name":"node","label":"B"}]}`
	if string(got) != want {
		t.Errorf("Convert() = %s, want %s", got, want)
	}
}

func TestConvert_DeepTree(t *testing.T) {
	tree := Leaf("bottom")
	for i := 0; i < 2000; i++ {
		tree = Branch("n", tree)
	}
	d, err := Convert(tree)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if got := d.Depth(); got != 2001 {
		t.Errorf("Depth() = %d, want 2001", got)
	}
}

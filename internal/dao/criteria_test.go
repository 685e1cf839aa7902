package dao

import "testing"

func TestCriteriaHasEmptySet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		crit Criteria
		want bool
	}{
		{"zero criteria", Criteria{}, false},
		{"scalar field", Where("id", 1), false},
		{"populated slice", Where("id", []uint{1, 2}), false},
		{"empty slice", Where("id", []uint{}), true},
		{"empty slice in and group", Criteria{
			Fields: map[string]any{"type": "vendor"},
			And:    []Criteria{Where("id", []uint{})},
		}, true},
		{"empty slice in or group", Criteria{
			Or: []Criteria{Where("id", []uint{1}), Where("name", []string{})},
		}, true},
		{"nested populated groups", Criteria{
			And: []Criteria{{Or: []Criteria{Where("id", []int{3})}}},
		}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.crit.HasEmptySet(); got != tt.want {
				t.Fatalf("HasEmptySet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaIsZero(t *testing.T) {
	t.Parallel()

	if !(Criteria{}).IsZero() {
		t.Fatal("expected empty criteria to be zero")
	}
	if Where("id", 1).IsZero() {
		t.Fatal("expected field criteria to be non-zero")
	}
	if (Criteria{And: []Criteria{{}}}).IsZero() {
		t.Fatal("expected criteria with groups to be non-zero")
	}
}

func TestAsSet(t *testing.T) {
	t.Parallel()

	if _, ok := asSet(nil); ok {
		t.Fatal("expected nil to not be a set")
	}
	if _, ok := asSet("text"); ok {
		t.Fatal("expected scalar to not be a set")
	}
	set, ok := asSet([]int{1, 2, 3})
	if !ok || len(set) != 3 {
		t.Fatalf("expected 3-element set, got %v (%v)", set, ok)
	}
}

package resample

import (
	"errors"
	"reflect"
	"testing"
)

// countByLabel tallies how many times each label appears in ys.
func countByLabel[L comparable](ys []L) map[L]int {
	counts := make(map[L]int)
	for _, y := range ys {
		counts[y]++
	}
	return counts
}

// TestClassesUndersampling verifies that every class is cut down to the size
// of the smallest class and that all outputs are drawn from the input.
func TestClassesUndersampling(t *testing.T) {
	x := []string{"a", "b", "c", "d", "e"}
	y := []int{0, 0, 0, 1, 1}

	xOut, yOut, err := Classes(x, y, Undersampling)
	if err != nil {
		t.Fatalf("Classes failed: %v", err)
	}
	if len(xOut) != len(yOut) {
		t.Fatalf("output length mismatch: %d != %d", len(xOut), len(yOut))
	}
	if len(xOut) != 4 {
		t.Fatalf("expected total length 4, got %d", len(xOut))
	}

	counts := countByLabel(yOut)
	for label, n := range counts {
		if n != 2 {
			t.Fatalf("label %d has count %d, expected 2", label, n)
		}
	}

	allowed := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true}
	for _, v := range xOut {
		if !allowed[v] {
			t.Fatalf("output element %q not drawn from input", v)
		}
	}
}

// TestClassesOversampling verifies that every class is grown to the size of
// the largest class by repeating examples.
func TestClassesOversampling(t *testing.T) {
	x := []string{"a", "b", "c", "d", "e"}
	y := []int{0, 0, 0, 1, 1}

	xOut, yOut, err := Classes(x, y, Oversampling)
	if err != nil {
		t.Fatalf("Classes failed: %v", err)
	}
	if len(xOut) != 6 {
		t.Fatalf("expected total length 6, got %d", len(xOut))
	}

	counts := countByLabel(yOut)
	if counts[0] != 3 || counts[1] != 3 {
		t.Fatalf("expected 3 per class, got %v", counts)
	}

	// The minority class {d,e} must contain exactly one repeated element,
	// and the repeat must come from its own examples.
	minority := make(map[string]int)
	for i, v := range xOut {
		if yOut[i] == 1 {
			minority[v]++
		}
	}
	repeats := 0
	for v, n := range minority {
		if v != "d" && v != "e" {
			t.Fatalf("minority class contains foreign element %q", v)
		}
		if n == 2 {
			repeats++
		}
	}
	if repeats != 1 {
		t.Fatalf("expected exactly one repeated minority element, got %d (%v)", repeats, minority)
	}
}

// TestClassesMediansampling checks the floor-median target count for both odd
// and even numbers of classes.
func TestClassesMediansampling(t *testing.T) {
	tests := []struct {
		name   string
		y      []int
		target int
	}{
		// sizes 1, 2, 4 -> median 2
		{"odd class count", []int{0, 1, 1, 2, 2, 2, 2}, 2},
		// sizes 1, 4 -> median 2.5 -> floor 2
		{"even class count", []int{0, 1, 1, 1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]int, len(tt.y))
			for i := range x {
				x[i] = i
			}
			_, yOut, err := Classes(x, tt.y, Mediansampling)
			if err != nil {
				t.Fatalf("Classes failed: %v", err)
			}
			counts := countByLabel(yOut)
			for label, n := range counts {
				if n != tt.target {
					t.Fatalf("label %d has count %d, expected %d", label, n, tt.target)
				}
			}
		})
	}
}

// TestClassesNoneIdentity verifies that None returns the input unchanged, in
// the original order, without shuffling.
func TestClassesNoneIdentity(t *testing.T) {
	x := []string{"a", "b", "c", "d", "e"}
	y := []int{0, 0, 0, 1, 1}

	xOut, yOut, err := Classes(x, y, None)
	if err != nil {
		t.Fatalf("Classes failed: %v", err)
	}
	if !reflect.DeepEqual(xOut, x) || !reflect.DeepEqual(yOut, y) {
		t.Fatalf("None mode modified the dataset: x=%v y=%v", xOut, yOut)
	}
}

// TestClassesDeterminism verifies that the same seed produces bit-identical
// output, and that a different seed is honored independently per call.
func TestClassesDeterminism(t *testing.T) {
	x := []int{10, 11, 12, 13, 14, 15, 16, 17}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1}

	x1, y1, err := Classes(x, y, Undersampling, WithSeed(7))
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	x2, y2, err := Classes(x, y, Undersampling, WithSeed(7))
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !reflect.DeepEqual(x1, x2) || !reflect.DeepEqual(y1, y2) {
		t.Fatalf("same seed produced different outputs: %v/%v vs %v/%v", x1, y1, x2, y2)
	}

	// Default-seed calls are deterministic too.
	d1, _, err := Classes(x, y, Undersampling)
	if err != nil {
		t.Fatalf("default seed call failed: %v", err)
	}
	d2, _, err := Classes(x, y, Undersampling)
	if err != nil {
		t.Fatalf("default seed call failed: %v", err)
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("default seed produced different outputs across calls")
	}
}

// TestClassesUndersamplingIdempotentCardinality verifies that undersampling an
// already balanced dataset leaves the per-class counts unchanged.
func TestClassesUndersamplingIdempotentCardinality(t *testing.T) {
	x := []int{0, 1, 2, 3, 4, 5, 6}
	y := []int{0, 0, 0, 0, 1, 1, 2}

	x1, y1, err := Classes(x, y, Undersampling)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	_, y2, err := Classes(x1, y1, Undersampling)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if !reflect.DeepEqual(countByLabel(y1), countByLabel(y2)) {
		t.Fatalf("second pass changed per-class counts: %v vs %v", countByLabel(y1), countByLabel(y2))
	}
}

// TestClassesErrors covers the two precondition violations.
func TestClassesErrors(t *testing.T) {
	if _, _, err := Classes([]string{"a", "b", "c"}, []int{0, 1}, Undersampling); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for mismatched lengths, got %v", err)
	}
	if _, _, err := Classes([]string{}, []int{}, Undersampling); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for empty dataset, got %v", err)
	}
	if _, _, err := Classes([]string{"a"}, []int{0}, Method("supersampling")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	// Precondition failures are detected eagerly, even in none mode.
	if _, _, err := Classes([]string{"a", "b"}, []int{0}, None); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch in none mode, got %v", err)
	}
}

// TestVectorsOneHot verifies that one-hot vector labels group into the same
// classes as the equivalent scalar labels.
func TestVectorsOneHot(t *testing.T) {
	x := []string{"a", "b", "c"}
	y := [][]float32{{1, 0}, {1, 0}, {0, 1}}

	xOut, yOut, err := Vectors(x, y, Undersampling, WithSeed(7))
	if err != nil {
		t.Fatalf("Vectors failed: %v", err)
	}
	if len(xOut) != 2 || len(yOut) != 2 {
		t.Fatalf("expected 1 example per class (2 total), got %d", len(xOut))
	}

	// The same dataset with scalar labels must balance identically.
	scalarX, scalarY, err := Classes(x, []int{0, 0, 1}, Undersampling, WithSeed(7))
	if err != nil {
		t.Fatalf("Classes failed: %v", err)
	}
	if !reflect.DeepEqual(xOut, scalarX) {
		t.Fatalf("vector labels ordered differently from scalar labels: %v vs %v", xOut, scalarX)
	}
	for i, lab := range yOut {
		want := 0
		if lab[1] == 1 {
			want = 1
		}
		if want != scalarY[i] {
			t.Fatalf("label %d disagrees with scalar result: %v vs %d", i, lab, scalarY[i])
		}
	}
}

// TestVectorsOversamplingSharesLabels verifies repeated examples keep their
// original vector label.
func TestVectorsOversamplingSharesLabels(t *testing.T) {
	x := []string{"a", "b", "c", "d"}
	y := [][]int{{1, 0}, {1, 0}, {1, 0}, {0, 1}}

	xOut, yOut, err := Vectors(x, y, Oversampling)
	if err != nil {
		t.Fatalf("Vectors failed: %v", err)
	}
	if len(xOut) != 6 {
		t.Fatalf("expected 6 examples, got %d", len(xOut))
	}
	for i, v := range xOut {
		if v == "d" && !reflect.DeepEqual(yOut[i], []int{0, 1}) {
			t.Fatalf("repeated example %q lost its label: %v", v, yOut[i])
		}
	}
}

// TestParseMethod checks name parsing for the CLI boundary.
func TestParseMethod(t *testing.T) {
	for _, name := range []string{"undersampling", "oversampling", "mediansampling", "none"} {
		m, err := ParseMethod(name)
		if err != nil {
			t.Fatalf("ParseMethod(%q) failed: %v", name, err)
		}
		if string(m) != name {
			t.Fatalf("ParseMethod(%q) returned %q", name, m)
		}
	}
	if _, err := ParseMethod("supersampling"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestMedianInt(t *testing.T) {
	tests := []struct {
		sizes []int
		want  int
	}{
		{[]int{5}, 5},
		{[]int{3, 7}, 5},
		{[]int{2, 3}, 2}, // 2.5 floors to 2
		{[]int{1, 2, 9}, 2},
		{[]int{4, 1, 3, 2}, 2},
	}
	for _, tt := range tests {
		if got := medianInt(tt.sizes); got != tt.want {
			t.Fatalf("medianInt(%v) = %d, want %d", tt.sizes, got, tt.want)
		}
	}
}

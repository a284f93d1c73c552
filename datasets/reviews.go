package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// ReviewDataset loads a tab-separated review corpus (e.g. data/filmstarts.tsv)
// where each line holds a review text and its integer star rating:
//
//	<text> \t <rating>
//
// Blank lines are skipped. The full corpus is read at construction; the
// source files are small enough that lazy row access is not worth the
// re-parsing cost here.
type ReviewDataset struct {
	// Path of the TSV file the corpus was loaded from.
	Path string

	texts   []string
	ratings []int

	// Sorted distinct ratings and their one-hot slot assignments.
	classes  []int
	classIdx map[int]int

	// Random generator for shuffling
	rand *rand.Rand

	// Current view order over the underlying rows, permuted by Shuffle.
	order []int
}

// NewReviewDataset reads the TSV file at path into a new dataset.
func NewReviewDataset(path string) (*ReviewDataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open TSV %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 2
	// Review texts may contain stray quote characters.
	reader.LazyQuotes = true

	ds := &ReviewDataset{
		Path:     path,
		classIdx: make(map[int]int),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read TSV row: %w", err)
		}
		line++

		rating, err := parseRating(record[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse rating on line %d: %w", line, err)
		}
		ds.texts = append(ds.texts, record[0])
		ds.ratings = append(ds.ratings, rating)
	}
	if len(ds.texts) == 0 {
		return nil, fmt.Errorf("no rows found in %s", path)
	}

	ds.buildClassIndex()

	ds.order = make([]int, len(ds.texts))
	for i := range ds.order {
		ds.order[i] = i
	}

	return ds, nil
}

// buildClassIndex assigns each distinct rating a one-hot slot, in ascending
// rating order.
func (d *ReviewDataset) buildClassIndex() {
	seen := make(map[int]bool)
	for _, r := range d.ratings {
		if !seen[r] {
			seen[r] = true
			d.classes = append(d.classes, r)
		}
	}
	sort.Ints(d.classes)
	for i, r := range d.classes {
		d.classIdx[r] = i
	}
}

// Len returns the number of examples in the corpus.
func (d *ReviewDataset) Len() int {
	return len(d.order)
}

// NumClasses returns the number of distinct ratings.
func (d *ReviewDataset) NumClasses() int {
	return len(d.classes)
}

// Classes returns the distinct ratings in ascending order, matching the slot
// layout of the one-hot labels.
func (d *ReviewDataset) Classes() []int {
	return append([]int(nil), d.classes...)
}

// Example returns the text and rating at index i in the current order.
func (d *ReviewDataset) Example(i int) (string, int, error) {
	if i < 0 || i >= len(d.order) {
		return "", 0, fmt.Errorf("index %d out of range [0, %d)", i, len(d.order))
	}
	row := d.order[i]
	return d.texts[row], d.ratings[row], nil
}

// Texts returns all review texts in the current order.
func (d *ReviewDataset) Texts() []string {
	out := make([]string, len(d.order))
	for i, row := range d.order {
		out[i] = d.texts[row]
	}
	return out
}

// Ratings returns all ratings in the current order.
func (d *ReviewDataset) Ratings() []int {
	out := make([]int, len(d.order))
	for i, row := range d.order {
		out[i] = d.ratings[row]
	}
	return out
}

// OneHot returns every label as a one-hot vector in the current order. The
// vector length is NumClasses and the slot for a rating is its position among
// the sorted distinct ratings.
func (d *ReviewDataset) OneHot() [][]float32 {
	out := make([][]float32, len(d.order))
	for i, row := range d.order {
		out[i] = d.oneHotFor(d.ratings[row])
	}
	return out
}

func (d *ReviewDataset) oneHotFor(rating int) []float32 {
	v := make([]float32, len(d.classes))
	v[d.classIdx[rating]] = 1
	return v
}

// Batch returns the texts and one-hot labels for the provided indices.
func (d *ReviewDataset) Batch(indices []int) ([]string, [][]float32, error) {
	texts := make([]string, len(indices))
	labels := make([][]float32, len(indices))
	for i, idx := range indices {
		text, rating, err := d.Example(idx)
		if err != nil {
			return nil, nil, err
		}
		texts[i] = text
		labels[i] = d.oneHotFor(rating)
	}
	return texts, labels, nil
}

// Shuffle shuffles the order of examples
func (d *ReviewDataset) Shuffle(seed int64) {
	d.rand.Seed(seed)
	d.rand.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
}

// LabelBatchFlat stores a batch of one-hot labels in a flat contiguous buffer
type LabelBatchFlat struct {
	Labels     []float32
	BatchSize  int
	NumClasses int
}

// MakeLabelBatchFlat flattens a batch of one-hot labels into a contiguous buffer
func MakeLabelBatchFlat(labels [][]float32) (*LabelBatchFlat, error) {
	if len(labels) == 0 {
		return &LabelBatchFlat{}, nil
	}

	batchSize := len(labels)
	numClasses := len(labels[0])
	flat := make([]float32, batchSize*numClasses)

	for i, lab := range labels {
		if len(lab) != numClasses {
			return nil, fmt.Errorf("inconsistent label dimensions at example %d: expected %d, got %d",
				i, numClasses, len(lab))
		}
		copy(flat[i*numClasses:], lab)
	}

	return &LabelBatchFlat{
		Labels:     flat,
		BatchSize:  batchSize,
		NumClasses: numClasses,
	}, nil
}

// ToGomlxTensor converts LabelBatchFlat to a gomlx tensor
func (b *LabelBatchFlat) ToGomlxTensor() (*tensors.Tensor, error) {
	// handle empty batch gracefully
	if b.BatchSize == 0 || b.NumClasses == 0 {
		empty := make([][]float32, 0)
		return tensors.FromAnyValue(empty), nil
	}
	// Reshape flat buffer into a 2D slice
	labels := make([][]float32, b.BatchSize)
	for i := range b.BatchSize {
		labels[i] = b.Labels[i*b.NumClasses : (i+1)*b.NumClasses]
	}
	return tensors.FromAnyValue(labels), nil
}

package datasets

// This file defines the dataset abstraction used by the preprocessing
// pipeline. The concrete implementation loads the workshop's tab-separated
// review corpus (see ReviewDataset) and presents it as parallel inputs and
// labels suitable for class balancing and, later, model training.
//
// Labels cross the package boundary in two shapes: raw integer ratings for
// grouping, and one-hot float32 vectors for training code. One-hot batches
// can be flattened into contiguous buffers and converted into gomlx tensors
// (see LabelBatchFlat), keeping the conversion step small and well-defined.

// Dataset is the minimal surface the preprocessing pipeline requires. The
// repository's ReviewDataset implements it; consumers that only need these
// methods can stay decoupled from the concrete type.
type Dataset interface {
	Len() int
	Example(i int) (text string, rating int, err error)
	Batch(indices []int) (texts []string, labels [][]float32, err error)
	Shuffle(seed int64)
}

// Package resample balances labeled datasets by class before model training.
//
// Given parallel slices of inputs x and labels y, it regroups the examples by
// label and resamples every class to a common size: the smallest class size
// (undersampling), the largest (oversampling, by cyclically repeating
// examples), or the median class size (mediansampling). The balanced dataset
// is shuffled with a caller-supplied seed so results are reproducible across
// runs. No new feature values are ever synthesized; resampling is pure
// selection and repetition of input examples.
//
// The shuffle uses a generator local to each call, so concurrent calls do not
// interfere with each other or with any other randomness in the process.
package resample

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Method selects the class-balancing strategy.
type Method string

const (
	// Undersampling shrinks every class to the size of the smallest class.
	Undersampling Method = "undersampling"

	// Oversampling grows every class to the size of the largest class by
	// cyclically repeating its examples.
	Oversampling Method = "oversampling"

	// Mediansampling targets the median class size, rounded down.
	Mediansampling Method = "mediansampling"

	// None passes the dataset through unchanged, without shuffling.
	None Method = "none"
)

var (
	// ErrLengthMismatch is returned when x and y differ in length, or when
	// the dataset is empty. Inputs must be equal-length slices of length >= 1.
	ErrLengthMismatch = errors.New("resample: x and y have different lengths")

	// ErrUnknownMethod is returned when the method is not one of the four
	// recognized strategies.
	ErrUnknownMethod = errors.New("resample: unknown sampling method")
)

// DefaultSeed seeds the shuffle when no WithSeed option is given, so repeated
// calls on the same data produce identical output ordering.
const DefaultSeed int64 = 42

// Number covers the element types accepted in vector labels.
type Number interface {
	constraints.Integer | constraints.Float
}

// Option configures a resampling call.
type Option func(*config)

type config struct {
	seed int64
}

// WithSeed sets the seed for the deterministic output shuffle.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// ParseMethod converts a method name such as "undersampling" into a Method.
// Unrecognized names return ErrUnknownMethod.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case Undersampling, Oversampling, Mediansampling, None:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Classes balances a dataset with scalar labels, grouping by the label value
// itself. x[i] is the input paired with label y[i]; inputs are opaque and
// never inspected. The returned slices are freshly allocated except in None
// mode, where the inputs are returned as-is.
func Classes[X any, L comparable](x []X, y []L, method Method, opts ...Option) ([]X, []L, error) {
	return byKey(x, y, func(l L) L { return l }, method, opts)
}

// Vectors balances a dataset whose labels are fixed-length numeric vectors,
// such as one-hot class indicators. Vectors are grouped by the concatenation
// of their elements' string forms, so [1 0] and [0 1] form distinct classes
// and behave exactly like the scalar labels 0 and 1 would.
func Vectors[X any, E Number](x []X, y [][]E, method Method, opts ...Option) ([]X, [][]E, error) {
	return byKey(x, y, vectorKey[E], method, opts)
}

type pair[X, L any] struct {
	x X
	y L
}

// byKey implements the shared grouping, target-count, resampling and shuffle
// steps. keyOf derives the grouping key per label variant.
func byKey[X, L any, K comparable](x []X, y []L, keyOf func(L) K, method Method, opts []Option) ([]X, []L, error) {
	cfg := config{seed: DefaultSeed}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Preconditions are checked before any grouping work so failures leave
	// the caller's data untouched.
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("%w: empty dataset", ErrLengthMismatch)
	}
	switch method {
	case Undersampling, Oversampling, Mediansampling:
	case None:
		return x, y, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	// Group examples by label key, preserving both the original order within
	// each group and the first-seen order of the groups themselves, so the
	// pre-shuffle sequence is fully determined by the input.
	groups := make(map[K][]pair[X, L])
	order := make([]K, 0)
	for i := range x {
		k := keyOf(y[i])
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], pair[X, L]{x: x[i], y: y[i]})
	}

	sizes := make([]int, len(order))
	for i, k := range order {
		sizes[i] = len(groups[k])
	}

	var target int
	switch method {
	case Undersampling:
		target = sizes[0]
		for _, s := range sizes[1:] {
			if s < target {
				target = s
			}
		}
	case Oversampling:
		target = sizes[0]
		for _, s := range sizes[1:] {
			if s > target {
				target = s
			}
		}
	case Mediansampling:
		target = medianInt(sizes)
	}

	sampled := make([]pair[X, L], 0, target*len(order))
	for _, k := range order {
		g := groups[k]
		if len(g) >= target {
			// Truncation keeps the first target examples in insertion order,
			// not a random subset.
			sampled = append(sampled, g[:target]...)
		} else {
			// Cyclic repetition: the group repeated whole, with the final
			// partial repetition drawn from its lowest-indexed examples.
			for i := 0; i < target; i++ {
				sampled = append(sampled, g[i%len(g)])
			}
		}
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})

	xOut := make([]X, len(sampled))
	yOut := make([]L, len(sampled))
	for i, p := range sampled {
		xOut[i] = p.x
		yOut[i] = p.y
	}
	return xOut, yOut, nil
}

// medianInt returns the median of the sizes rounded down. For an even count
// the median is the mean of the two central values, truncated to an integer.
func medianInt(sizes []int) int {
	s := append([]int(nil), sizes...)
	sort.Ints(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// vectorKey collapses a numeric vector label into a single grouping key by
// concatenating the string forms of its elements. Vectors whose string forms
// coincide collide; one-hot indicators are always distinct.
func vectorKey[E Number](v []E) string {
	var b strings.Builder
	for _, e := range v {
		fmt.Fprintf(&b, "%v", e)
	}
	return b.String()
}

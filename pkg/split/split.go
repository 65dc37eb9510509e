// Package split implements the cross-fit driver's fold planner. It
// generalizes pkg/loader/split.go's original KFoldSplit — which only
// offered an unstratified KFoldSplit built on the global math/rand source —
// into a seeded, deterministic planner with simple, stratified, and
// pre-computed variants.
package split

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrInvalidSplit is returned when a pre-computed split fails its
// disjointness/coverage checks.
var ErrInvalidSplit = errors.New("split: invalid fold assignment")

// Fold is one application fold: TrainIndices are fit against, AppIndices
// are emitted into, and the two are disjoint within the training slice.
type Fold struct {
	TrainIndices []int
	AppIndices   []int
}

// Plan is an ordered list of folds whose AppIndices partition {0..n-1}.
type Plan struct {
	Folds []Fold
}

// KFold produces the default "simple k-fold" variant: a seeded shuffle of
// {0..n-1} followed by k consecutive application slices, each fold's train
// set being the complement of its app set.
func KFold(n, k int, seed uint64) Plan {
	order := shuffledIndices(n, seed)
	return foldsFromOrder(order, k)
}

// StratifiedByClass produces the stratified-by-outcome variant for
// binomial/multinomial outcomes: within each class, rows are distributed
// round-robin across k folds so each fold keeps the class proportions of
// the whole.
func StratifiedByClass(labels []string, k int, seed uint64) Plan {
	byClass := map[string][]int{}
	classOrder := make([]string, 0)
	for i, l := range labels {
		if _, ok := byClass[l]; !ok {
			classOrder = append(classOrder, l)
		}
		byClass[l] = append(byClass[l], i)
	}
	sort.Strings(classOrder)

	appBuckets := make([][]int, k)
	rng := rand.New(rand.NewSource(int64(seed)))
	for _, class := range classOrder {
		idx := byClass[class]
		perm := rng.Perm(len(idx))
		for pos, p := range perm {
			f := pos % k
			appBuckets[f] = append(appBuckets[f], idx[p])
		}
	}
	return foldsFromAppBuckets(appBuckets, len(labels))
}

// StratifiedByQuantile produces the stratified-by-outcome variant for
// numeric outcomes: rows are bucketed into nBuckets quantile bins, then
// each bucket is distributed round-robin across k folds. This generalizes
// pkg/dataprep/features.go's BinContinuous (which just
// assigned equal-width bins for feature engineering) into equal-population
// quantile bins used purely to drive fold stratification.
func StratifiedByQuantile(y []float64, nBuckets, k int, seed uint64) Plan {
	n := len(y)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return y[order[a]] < y[order[b]] })

	bucketOf := make([]int, n)
	for rank, row := range order {
		bucket := rank * nBuckets / n
		if bucket >= nBuckets {
			bucket = nBuckets - 1
		}
		bucketOf[row] = bucket
	}

	appBuckets := make([][]int, k)
	rng := rand.New(rand.NewSource(int64(seed)))
	byBucket := make([][]int, nBuckets)
	for row, b := range bucketOf {
		byBucket[b] = append(byBucket[b], row)
	}
	for _, idx := range byBucket {
		perm := rng.Perm(len(idx))
		for pos, p := range perm {
			f := pos % k
			appBuckets[f] = append(appBuckets[f], idx[p])
		}
	}
	return foldsFromAppBuckets(appBuckets, n)
}

// Precomputed validates a caller-supplied set of application buckets:
// their union must cover {0..n-1} exactly once, else
// ErrInvalidSplit is returned.
func Precomputed(appBuckets [][]int, n int) (Plan, error) {
	seen := make([]bool, n)
	count := 0
	for _, bucket := range appBuckets {
		for _, r := range bucket {
			if r < 0 || r >= n {
				return Plan{}, ErrInvalidSplit
			}
			if seen[r] {
				return Plan{}, ErrInvalidSplit
			}
			seen[r] = true
			count++
		}
	}
	if count != n {
		return Plan{}, ErrInvalidSplit
	}
	return foldsFromAppBuckets(appBuckets, n), nil
}

func shuffledIndices(n int, seed uint64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

func foldsFromOrder(order []int, k int) Plan {
	n := len(order)
	appBuckets := make([][]int, k)
	for i, row := range order {
		f := i * k / n
		if f >= k {
			f = k - 1
		}
		appBuckets[f] = append(appBuckets[f], row)
	}
	return foldsFromAppBuckets(appBuckets, n)
}

func foldsFromAppBuckets(appBuckets [][]int, n int) Plan {
	k := len(appBuckets)
	folds := make([]Fold, k)
	for f := 0; f < k; f++ {
		app := make([]int, len(appBuckets[f]))
		copy(app, appBuckets[f])
		sort.Ints(app) // stable by row index

		inApp := make([]bool, n)
		for _, r := range app {
			inApp[r] = true
		}
		train := make([]int, 0, n-len(app))
		for r := 0; r < n; r++ {
			if !inApp[r] {
				train = append(train, r)
			}
		}
		folds[f] = Fold{TrainIndices: train, AppIndices: app}
	}
	return Plan{Folds: folds}
}

package crossfilter

// Reducer builds a group accumulator incrementally. Add and Remove must be
// order independent and inverse to each other: removing a record that was
// added leaves the accumulator as if it had never been added. Accumulators
// holding references (maps, pointers) may be updated in place and returned.
type Reducer[T any, V any] struct {
	Add     func(acc V, rec T) V
	Remove  func(acc V, rec T) V
	Initial func() V
}

// Number is the set of accumulator types Sum supports.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Count counts records.
func Count[T any]() Reducer[T, int] {
	return Reducer[T, int]{
		Add:     func(acc int, _ T) int { return acc + 1 },
		Remove:  func(acc int, _ T) int { return acc - 1 },
		Initial: func() int { return 0 },
	}
}

// Sum adds up value(rec). Floating point sums are only approximately
// invertible; prefer integer values where exact results matter.
func Sum[T any, N Number](value func(T) N) Reducer[T, N] {
	return Reducer[T, N]{
		Add:     func(acc N, rec T) N { return acc + value(rec) },
		Remove:  func(acc N, rec T) N { return acc - value(rec) },
		Initial: func() N { return 0 },
	}
}

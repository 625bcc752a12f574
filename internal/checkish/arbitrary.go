// ABOUTME: Random value generators for the checkish property harness.
// ABOUTME: Each generator closes over its configuration and yields one fresh value per call.

package checkish

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"time"
)

// Gen produces one value of shape T per invocation. Invocations are
// independent: there is no seed propagation and no replay guarantee.
type Gen[T any] func() T

const lowercase = "abcdefghijklmnopqrstuvwxyz"

// String returns a generator of lowercase alphabetic strings whose length is
// uniform in [minLen, maxLen] inclusive. The length is chosen first and the
// string built to exactly that length, so bounds hold by construction.
func String(minLen, maxLen int) Gen[string] {
	return func() string {
		n := minLen + rand.IntN(maxLen-minLen+1)
		b := make([]byte, n)
		for i := range b {
			b[i] = lowercase[rand.IntN(len(lowercase))]
		}
		return string(b)
	}
}

// AnyString is String with the default bounds (0, 20).
func AnyString() Gen[string] {
	return String(0, 20)
}

// ConstantFrom returns a generator picking uniformly from the supplied values.
// An empty candidate set is a configuration error and panics at construction.
func ConstantFrom[T any](values ...T) Gen[T] {
	if len(values) == 0 {
		panic("checkish: ConstantFrom requires at least one value")
	}
	return func() T {
		return values[rand.IntN(len(values))]
	}
}

// Date returns a generator of instants uniform in [min, max] inclusive.
func Date(min, max time.Time) Gen[time.Time] {
	span := max.Sub(min)
	return func() time.Time {
		return min.Add(time.Duration(rand.Int64N(int64(span) + 1)))
	}
}

// AnyDate generates within a fixed one-year window starting at the current day.
func AnyDate() Gen[time.Time] {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return Date(now, now.AddDate(1, 0, 0))
}

// Record returns a generator of maps carrying exactly the schema's keys.
// A schema value that is a zero-argument single-result function (any Gen) is
// invoked per generation; any other value is copied through literally.
func Record(schema map[string]any) Gen[map[string]any] {
	return func() map[string]any {
		out := make(map[string]any, len(schema))
		for key, spec := range schema {
			out[key] = produce(spec)
		}
		return out
	}
}

// produce invokes spec if it is a nullary single-result func, else returns it as-is.
func produce(spec any) any {
	v := reflect.ValueOf(spec)
	if v.Kind() == reflect.Func && v.Type().NumIn() == 0 && v.Type().NumOut() == 1 {
		return v.Call(nil)[0].Interface()
	}
	return spec
}

// Array returns a generator of slices whose length is uniform in
// [minLen, maxLen] inclusive, each element produced independently.
func Array[T any](elem Gen[T], minLen, maxLen int) Gen[[]T] {
	return func() []T {
		n := minLen + rand.IntN(maxLen-minLen+1)
		out := make([]T, n)
		for i := range out {
			out[i] = elem()
		}
		return out
	}
}

// AnyArray is Array with the default bounds (0, 10).
func AnyArray[T any](elem Gen[T]) Gen[[]T] {
	return Array(elem, 0, 10)
}

// IntRange returns a generator of ints uniform in [min, max] inclusive.
func IntRange(min, max int) Gen[int] {
	if max < min {
		panic(fmt.Sprintf("checkish: IntRange bounds inverted (%d > %d)", min, max))
	}
	return func() int {
		return min + rand.IntN(max-min+1)
	}
}

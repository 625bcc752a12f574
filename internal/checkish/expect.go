// ABOUTME: Fluent expectation surface for the checkish harness.
// ABOUTME: Matchers raise a typed Failure naming expected and actual instead of returning booleans.

package checkish

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Failure is the raised form of a mismatched expectation. The runner and the
// property driver recover it and turn it into a reported failure.
type Failure struct {
	msg string
}

func (f *Failure) Error() string { return f.msg }

// Fail raises a Failure with a formatted message.
func Fail(format string, args ...any) {
	panic(&Failure{msg: fmt.Sprintf(format, args...)})
}

// Expectation wraps an actual value for matching. The Not field is the
// negated view of the same value.
type Expectation struct {
	actual any
	negated bool

	Not *Expectation
}

// Expect starts a fluent expectation over actual.
func Expect(actual any) *Expectation {
	e := &Expectation{actual: actual}
	e.Not = &Expectation{actual: actual, negated: true}
	return e
}

// verify raises unless ok matches the expectation's polarity. The description
// names the expected condition; negated checks get "not" spliced in.
func (e *Expectation) verify(ok bool, description string) {
	if ok != e.negated {
		return
	}
	if e.negated {
		Fail("expected %s not %s", format(e.actual), description)
	}
	Fail("expected %s %s", format(e.actual), description)
}

// ToBe matches by identity (interface equality); no structural comparison.
func (e *Expectation) ToBe(expected any) {
	e.verify(e.actual == expected, fmt.Sprintf("to be %s", format(expected)))
}

// ToEqual matches by structural equality via stable serialization of both
// sides, order-sensitive for keys and elements.
func (e *Expectation) ToEqual(expected any) {
	e.verify(serialize(e.actual) == serialize(expected), fmt.Sprintf("to equal %s", format(expected)))
}

// ToHaveLength requires a non-nil value whose length equals n.
func (e *Expectation) ToHaveLength(n int) {
	length, ok := lengthOf(e.actual)
	e.verify(ok && length == n, fmt.Sprintf("to have length %d", n))
}

// ToBeNull matches nil, including typed nil pointers, slices, and maps.
func (e *Expectation) ToBeNull() {
	e.verify(isNil(e.actual), "to be null")
}

// ToBeInstanceOf matches when actual's dynamic type is the prototype's type.
// A reflect.Type may be passed directly.
func (e *Expectation) ToBeInstanceOf(prototype any) {
	want, ok := prototype.(reflect.Type)
	if !ok {
		want = reflect.TypeOf(prototype)
	}
	got := reflect.TypeOf(e.actual)
	e.verify(got == want, fmt.Sprintf("to be an instance of %v", want))
}

// ToBeLessThan matches numeric values strictly below n.
func (e *Expectation) ToBeLessThan(n any) {
	actual, okA := asFloat(e.actual)
	bound, okB := asFloat(n)
	e.verify(okA && okB && actual < bound, fmt.Sprintf("to be less than %s", format(n)))
}

func format(v any) string {
	switch v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func serialize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

func lengthOf(v any) (int, bool) {
	if isNil(v) {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

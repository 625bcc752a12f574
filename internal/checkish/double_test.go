// ABOUTME: Tests for the configurable stub surface.
// ABOUTME: Verifies one-shot queue precedence, standing outcomes, custom implementations, and Clear.

package checkish

import (
	"errors"
	"testing"
)

func TestStub_Unconfigured(t *testing.T) {
	v, err := Fn().Call()
	if v != nil || err != nil {
		t.Errorf("Call() = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestStub_StandingAndOnce(t *testing.T) {
	s := Fn().ResolveWith("standing").ResolveOnceWith("first").ResolveOnceWith("second")

	for i, want := range []string{"first", "second", "standing", "standing"} {
		v, err := s.Call()
		if err != nil {
			t.Fatalf("Call() #%d error = %v", i, err)
		}
		if v != want {
			t.Errorf("Call() #%d = %v, want %q", i, v, want)
		}
	}
}

func TestStub_Failures(t *testing.T) {
	wantErr := errors.New("unavailable")
	s := Fn().ResolveWith("ok").FailOnceWith(wantErr)

	if _, err := s.Call(); !errors.Is(err, wantErr) {
		t.Errorf("Call() error = %v, want %v", err, wantErr)
	}
	if v, err := s.Call(); err != nil || v != "ok" {
		t.Errorf("Call() = (%v, %v), want (ok, nil)", v, err)
	}
}

func TestStub_ImplementWith(t *testing.T) {
	s := Fn().ImplementWith(func(args ...any) (any, error) {
		return len(args), nil
	})

	v, err := s.Call("a", "b", "c")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if v != 3 {
		t.Errorf("Call() = %v, want 3", v)
	}
}

func TestStub_Clear(t *testing.T) {
	s := Fn().ResolveWith("x").ResolveOnceWith("y")
	s.Clear()

	v, err := s.Call()
	if v != nil || err != nil {
		t.Errorf("Call() after Clear() = (%v, %v), want (nil, nil)", v, err)
	}
}

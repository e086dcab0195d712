package quantum

import (
	"errors"
	"testing"
)

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"ground", State{1, 0, 0}, true},
		{"2p-1", State{2, 1, -1}, true},
		{"3d+2", State{3, 2, 2}, true},
		{"n zero", State{0, 0, 0}, false},
		{"negative n", State{-1, 0, 0}, false},
		{"l equals n", State{2, 2, 0}, false},
		{"negative l", State{2, -1, 0}, false},
		{"m above l", State{2, 1, 2}, false},
		{"m below -l", State{3, 1, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidState) {
				t.Errorf("Validate() = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestNew_ReturnsStateError(t *testing.T) {
	_, err := New(1, 1, 0)
	var se *StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StateError, got %T", err)
	}
	if se.State != (State{1, 1, 0}) {
		t.Errorf("unexpected state in error: %v", se.State)
	}
}

func TestState_Label(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{State{1, 0, 0}, "1s"},
		{State{2, 1, 0}, "2p(m=0)"},
		{State{3, 2, -2}, "3d(m=-2)"},
		{State{4, 3, 1}, "4f(m=1)"},
	}
	for _, tt := range tests {
		if got := tt.state.Label(); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestParseBasis(t *testing.T) {
	if b, err := ParseBasis("Real"); err != nil || b != Real {
		t.Errorf("ParseBasis(Real) = %v, %v", b, err)
	}
	if b, err := ParseBasis(""); err != nil || b != Complex {
		t.Errorf("ParseBasis(\"\") = %v, %v", b, err)
	}
	if _, err := ParseBasis("spinor"); err == nil {
		t.Error("expected error for unknown basis")
	}
}

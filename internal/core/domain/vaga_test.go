package domain

import (
	"errors"
	"testing"
)

func TestVagaValidateRejectsNonPositiveNumber(t *testing.T) {
	for _, n := range []int{0, -3} {
		err := Vaga{Number: n, Floor: 1}.Validate()
		if !errors.Is(err, ErrInvalidVaga) {
			t.Fatalf("number %d: expected invalid vaga, got %v", n, err)
		}
	}
}

func TestVagaValidateAcceptsNegativeFloor(t *testing.T) {
	if err := (Vaga{Number: 4, Floor: -2}).Validate(); err != nil {
		t.Fatalf("expected basement floor to be valid, got %v", err)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   int64
		want bool
	}{
		{id: 1, want: true},
		{id: 42, want: true},
		{id: 0, want: false},
		{id: -1, want: false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Fatalf("ValidID(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

package charset

import "testing"

func TestScalarCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"café", 4},
		{"🍕pizza", 6},
	}
	for _, c := range cases {
		if got := ScalarCount(c.in); got != c.want {
			t.Errorf("ScalarCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestScalarOffset(t *testing.T) {
	s := "café"
	cases := []struct {
		i    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 5}, // 'é' is 2 bytes
	}
	for _, c := range cases {
		got, err := ScalarOffset(s, c.i)
		if err != nil {
			t.Fatalf("ScalarOffset(%q, %d) returned error: %v", s, c.i, err)
		}
		if got != c.want {
			t.Errorf("ScalarOffset(%q, %d) = %d, want %d", s, c.i, got, c.want)
		}
	}

	if _, err := ScalarOffset(s, -1); err != ErrIndexRange {
		t.Errorf("ScalarOffset with negative index: got %v, want ErrIndexRange", err)
	}
	if _, err := ScalarOffset(s, 5); err != ErrIndexRange {
		t.Errorf("ScalarOffset past end: got %v, want ErrIndexRange", err)
	}
}

package render

import (
	"math/rand"
	"slices"
	"testing"
)

func TestSpanListMerge(t *testing.T) {
	var s SpanList
	s.Add(10, 20)
	s.Add(30, 40)
	s.Add(21, 25) // Adjacent to the first
	s.Add(50, 50)
	want := []Span{{10, 25}, {30, 40}, {50, 50}}
	if !slices.Equal(s.Spans(), want) {
		t.Fatalf("expected %v, got %v", want, s.Spans())
	}

	s.Add(0, 45)
	want = []Span{{0, 45}, {50, 50}}
	if !slices.Equal(s.Spans(), want) {
		t.Fatalf("expected %v, got %v", want, s.Spans())
	}

	s.Add(3, 4) // Already covered
	if !slices.Equal(s.Spans(), want) {
		t.Fatalf("expected no change, got %v", s.Spans())
	}
}

func TestSpanListOrderIndependent(t *testing.T) {
	input := []Span{{5, 9}, {40, 60}, {10, 12}, {100, 319}, {61, 61}, {0, 2}, {70, 80}, {75, 99}, {20, 30}}

	var ref SpanList
	for _, sp := range input {
		ref.Add(sp.X1, sp.X2)
	}
	want := slices.Clone(ref.Spans())

	rng := rand.New(rand.NewSource(1))
	for range 50 {
		shuffled := slices.Clone(input)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		var s SpanList
		for _, sp := range shuffled {
			s.Add(sp.X1, sp.X2)
			s.Add(sp.X1, sp.X2) // Idempotent
		}
		if !slices.Equal(s.Spans(), want) {
			t.Fatalf("order %v: expected %v, got %v", shuffled, want, s.Spans())
		}
	}

	for i := 1; i < len(want); i++ {
		if want[i].X1 <= want[i-1].X2+1 {
			t.Fatalf("spans %v and %v should have been merged", want[i-1], want[i])
		}
	}
}

func TestSpanListClip(t *testing.T) {
	var s SpanList
	s.Add(10, 20)
	s.Add(30, 40)

	tests := []struct {
		x1, x2 int
		want   []Span
	}{
		{0, 5, []Span{{0, 5}}},
		{0, 50, []Span{{0, 9}, {21, 29}, {41, 50}}},
		{12, 18, nil},
		{15, 35, []Span{{21, 29}}},
		{20, 30, []Span{{21, 29}}},
		{41, 41, []Span{{41, 41}}},
	}
	for _, test := range tests {
		got := s.Clip(test.x1, test.x2, nil)
		if !slices.Equal(got, test.want) {
			t.Errorf("Clip(%d, %d): expected %v, got %v", test.x1, test.x2, test.want, got)
		}
		if covered := s.Covers(test.x1, test.x2); covered != (len(got) == 0) {
			t.Errorf("Covers(%d, %d): expected %v", test.x1, test.x2, len(got) == 0)
		}
	}

	s.Reset()
	if len(s.Spans()) != 0 {
		t.Fatalf("expected empty list after Reset, got %v", s.Spans())
	}
}

package highlight

import (
	"errors"
	"testing"
)

func TestLayerAddRejectsOutOfRange(t *testing.T) {
	layer := NewLayer(func() int { return 3 })

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 1},
		{"end before start", 2, 1},
		{"end past text", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := layer.AddHighlight(tt.start, tt.end, KindBrace); !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
		})
	}
	if layer.Len() != 0 {
		t.Fatalf("rejected spans must not be stored, got %d", layer.Len())
	}
}

func TestLayerSpansSortedAndRemovable(t *testing.T) {
	layer := NewLayer(func() int { return 10 })

	late, err := layer.AddHighlight(5, 6, KindMatch1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := layer.AddHighlight(0, 2, KindMatch0); err != nil {
		t.Fatalf("add: %v", err)
	}

	spans := layer.Spans()
	if len(spans) != 2 || spans[0].Start != 0 || spans[1].Start != 5 {
		t.Fatalf("unexpected span order: %+v", spans)
	}

	layer.RemoveHighlight(late)
	if layer.Len() != 1 {
		t.Fatalf("expected one span after removal, got %d", layer.Len())
	}
	layer.RemoveHighlight(late)

	layer.RemoveAll()
	if layer.Len() != 0 {
		t.Fatalf("expected empty layer, got %d", layer.Len())
	}
}

func TestLayerKindAtPrefersNewest(t *testing.T) {
	layer := NewLayer(func() int { return 4 })
	_, _ = layer.AddHighlight(0, 4, KindMatch0)
	_, _ = layer.AddHighlight(1, 2, KindBrace)

	if kind, ok := layer.KindAt(1); !ok || kind != KindBrace {
		t.Fatalf("KindAt(1) = %v,%v want KindBrace", kind, ok)
	}
	if kind, ok := layer.KindAt(3); !ok || kind != KindMatch0 {
		t.Fatalf("KindAt(3) = %v,%v want KindMatch0", kind, ok)
	}
	if _, ok := layer.KindAt(4); ok {
		t.Fatalf("end offset is exclusive")
	}
}

func TestMatchKindRotates(t *testing.T) {
	want := []Kind{KindMatch0, KindMatch1, KindMatch2, KindMatch0}
	for i, k := range want {
		if got := MatchKind(i); got != k {
			t.Fatalf("MatchKind(%d) = %v want %v", i, got, k)
		}
	}
}

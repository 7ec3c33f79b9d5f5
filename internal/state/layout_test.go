package state

import "testing"

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		pattern int
		subject int
		result  int
	}{
		{"standard terminal", 80, 24, 3, 9, 6},
		{"tall terminal", 120, 60, 3, 41, 10},
		{"short terminal", 80, 14, 2, 4, 2},
		{"tiny terminal", 20, 8, 1, 1, 0},
		{"degenerate", 10, 3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.w, tt.h)
			if l.Pattern.Rows != tt.pattern || l.Subject.Rows != tt.subject || l.Result.Rows != tt.result {
				t.Fatalf("rows pattern=%d subject=%d result=%d", l.Pattern.Rows, l.Subject.Rows, l.Result.Rows)
			}
			if l.FooterY != tt.h-1 || l.StatusY != tt.h-2 {
				t.Fatalf("bottom lines at %d/%d", l.StatusY, l.FooterY)
			}
			if tt.h >= fixedRows && l.Result.Top+l.Result.Rows > l.StatusY {
				t.Fatalf("result pane overlaps status line")
			}
		})
	}
}

func TestPaneContains(t *testing.T) {
	p := Pane{Top: 5, Rows: 2}
	if p.Contains(4) || !p.Contains(5) || !p.Contains(6) || p.Contains(7) {
		t.Fatalf("Contains bounds wrong for %+v", p)
	}
}

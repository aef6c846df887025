package layout

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{Width: 1200}.Normalize()
}

func TestAllocateColumns_Empty(t *testing.T) {
	if cols := AllocateColumns(nil, testConfig()); cols != nil {
		t.Errorf("expected nil columns, got %d", len(cols))
	}
}

func TestAllocateColumns_SingleCategory(t *testing.T) {
	cfg := testConfig()
	cols := AllocateColumns([]string{"general"}, cfg)

	if got, want := len(cols), 1; got != want {
		t.Fatalf("column count = %d, want %d", got, want)
	}

	c := cols[0]
	if got, want := c.Left, cfg.Margin; got != want {
		t.Errorf("left = %f, want %f", got, want)
	}
	if got, want := c.Right, cfg.Width-cfg.Margin; got != want {
		t.Errorf("right = %f, want %f", got, want)
	}
	if got, want := c.InnerLeft, c.Left+cfg.ColumnPadding; got != want {
		t.Errorf("inner left = %f, want %f", got, want)
	}
	if got, want := c.InnerRight, c.Right-cfg.ColumnPadding; got != want {
		t.Errorf("inner right = %f, want %f", got, want)
	}
}

func TestAllocateColumns_OrderAndSpacing(t *testing.T) {
	cfg := testConfig()
	cats := []string{"general", "products", "support"}
	cols := AllocateColumns(cats, cfg)

	if got, want := len(cols), 3; got != want {
		t.Fatalf("column count = %d, want %d", got, want)
	}

	for i, c := range cols {
		if c.Category != cats[i] {
			t.Errorf("column %d category = %q, want %q", i, c.Category, cats[i])
		}
	}

	// Equal widths.
	w := cols[0].Width()
	for i, c := range cols[1:] {
		if math.Abs(c.Width()-w) > 1e-9 {
			t.Errorf("column %d width = %f, want %f", i+1, c.Width(), w)
		}
	}

	// Fixed gutter between neighbors, no overlap.
	for i := 1; i < len(cols); i++ {
		gap := cols[i].Left - cols[i-1].Right
		if math.Abs(gap-cfg.Gutter) > 1e-9 {
			t.Errorf("gap %d = %f, want %f", i, gap, cfg.Gutter)
		}
	}

	// Centered between the margins.
	leading := cols[0].Left
	trailing := cfg.Width - cols[len(cols)-1].Right
	if math.Abs(leading-trailing) > 1e-9 {
		t.Errorf("not centered: leading %f, trailing %f", leading, trailing)
	}
}

func TestAllocateColumns_NarrowCanvas(t *testing.T) {
	// Far more categories than the width can hold: columns degrade to
	// narrow spans instead of failing.
	cfg := Config{Width: 300}.Normalize()
	cats := []string{"a", "b", "c", "d", "e", "f"}
	cols := AllocateColumns(cats, cfg)

	if got, want := len(cols), len(cats); got != want {
		t.Fatalf("column count = %d, want %d", got, want)
	}
	for i, c := range cols {
		if c.Width() < 0 {
			t.Errorf("column %d has negative width %f", i, c.Width())
		}
		if c.InnerRight < c.InnerLeft {
			t.Errorf("column %d inner span inverted: [%f, %f]", i, c.InnerLeft, c.InnerRight)
		}
	}
}

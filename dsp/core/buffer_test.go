package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestZeroFillShortSource(t *testing.T) {
	dst := []float64{9, 9, 9, 9}
	ZeroFill(dst, []float64{1, 2})

	want := []float64{1, 2, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}

	ZeroFill(dst, nil)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("dst[%d] = %v after nil source", i, v)
		}
	}
}

func TestNewBlockAndFrames(t *testing.T) {
	block := NewBlock(2, 8)
	if len(block) != 2 || Frames(block) != 8 {
		t.Fatalf("block shape = %dx%d, want 2x8", len(block), Frames(block))
	}

	block[0] = append(block[0], 1)
	if block[1][0] != 0 {
		t.Fatal("appending to one channel must not overwrite the next")
	}

	if Frames(nil) != 0 {
		t.Fatal("Frames(nil) != 0")
	}
}

func TestCopyBlockMissingChannel(t *testing.T) {
	dst := NewBlock(2, 3)
	dst[1][0] = 5

	CopyBlock(dst, [][]float64{{1, 2, 3}})
	if dst[0][2] != 3 || dst[1][0] != 0 {
		t.Fatalf("dst = %v", dst)
	}
}

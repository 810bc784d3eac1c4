package mahjong

import (
	"reflect"
	"testing"
)

func TestSplitMeldRun(t *testing.T) {
	cases := []struct {
		name string
		in   []TileID
		want [][]TileID
	}{
		{
			name: "pon then sequence",
			in:   []TileID{East, East, East, Man1, Man2, Man3},
			want: [][]TileID{{East, East, East}, {Man1, Man2, Man3}},
		},
		{
			name: "open kan",
			in:   []TileID{Pin9, Pin9 + RotatedOffset, Pin9, Pin9},
			want: [][]TileID{{Pin9, Pin9 + RotatedOffset, Pin9, Pin9}},
		},
		{
			name: "pairs become concealed kans",
			in:   []TileID{1, 1, 2, 2, 3, 3, 4, 4, 5, 5},
			want: [][]TileID{{1, 1, 1, 1}, {2, 2, 2, 2}, {3, 3, 3, 3}, {4, 4, 4, 4}, {5, 5, 5, 5}},
		},
		{
			name: "trailing single dropped",
			in:   []TileID{Man1, Man2, Man3, Red},
			want: [][]TileID{{Man1, Man2, Man3}},
		},
	}
	for _, c := range cases {
		got := SplitMeldRun(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestSuspiciousBand(t *testing.T) {
	m := Pin3 + SuspiciousOffset
	if !IsSuspicious(m) || Canonical(m) != Pin3 {
		t.Fatalf("suspicious band wrong: %d", m)
	}
	if IsSuspicious(Pin3 + RotatedOffset) {
		t.Fatalf("rotated tile is not suspicious")
	}
	if !IsRotated(Pin3+RotatedOffset+SuspiciousOffset) || IsRotated(m) {
		t.Fatalf("rotation detection wrong")
	}
}

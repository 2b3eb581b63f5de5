package board

import "testing"

func TestKeyFirstMove(t *testing.T) {
	b := New()
	if b.Key() != 0 {
		t.Errorf("Key() = %d, want 0", b.Key())
	}
}

func TestLastmoveSquare(t *testing.T) {
	b1, _ := Load("221400203101122")
	if !b1.lastmoveSquare() {
		t.Errorf("board1: want lastmoveSquare true")
	}

	b2, _ := Load("221400203101123")
	if b2.lastmoveSquare() {
		t.Errorf("board2: want lastmoveSquare false")
	}

	b3, _ := Load("2214002031011232")
	if !b3.lastmoveSquare() {
		t.Errorf("board3: want lastmoveSquare true")
	}
}

func TestSymmetryMap(t *testing.T) {
	v := uint32(0b00001_00010_11010_01011_01100)
	want := uint64(0b00110_11010_01011_01000_10000)
	if got := symmetryMap(v, symmetries[5]); got != want {
		t.Errorf("symmetryMap = %025b, want %025b", got, want)
	}
}

func TestKey(t *testing.T) {
	b1, _ := Load("221400203101122")
	want1 := uint64(0b00000001_010_010_00001_00010_11111_11111_11111_00000_00010_01001_10100_10011)
	if got := b1.Key(); got != want1 {
		t.Errorf("board1.Key() = %064b, want %064b", got, want1)
	}

	b2, _ := Load("221400203101123")
	want2 := uint64(0b00000001_000_011_00001_00010_11111_11111_11111_00000_00000_00101_10100_10011)
	if got := b2.Key(); got != want2 {
		t.Errorf("board2.Key() = %064b, want %064b", got, want2)
	}

	b3, _ := Load("2214002031011232")
	want3 := uint64(0b10000000_011_010_00001_00110_11111_11111_11111_00001_00010_11010_01011_01100)
	if got := b3.Key(); got != want3 {
		t.Errorf("board3.Key() = %064b, want %064b", got, want3)
	}
}

func TestKeys(t *testing.T) {
	b1, _ := Load("221400203101122")
	keys1 := b1.Keys()
	want1_0 := uint64(0b00000001_010_010_00001_00010_11111_11111_11111_00000_00010_01001_10100_10011)
	want1_6 := uint64(0b00000001_010_010_11111_11111_11111_01000_10000_11001_00101_10010_01000_00000)
	if keys1[0] != want1_0 {
		t.Errorf("keys1[0] = %064b, want %064b", keys1[0], want1_0)
	}
	if keys1[6] != want1_6 {
		t.Errorf("keys1[6] = %064b, want %064b", keys1[6], want1_6)
	}

	b2, _ := Load("221400203101123")
	keys2 := b2.Keys()
	want2_6 := uint64(0b00000001_000_001_11111_11111_11111_01000_10000_11001_00101_10100_00000_00000)
	if keys2[6] != want2_6 {
		t.Errorf("keys2[6] = %064b, want %064b", keys2[6], want2_6)
	}

	b3, _ := Load("2214002031011232")
	keys3 := b3.Keys()
	want3_6 := uint64(0b10000000_001_010_11111_11111_11111_01100_10000_00110_11010_01011_01000_10000)
	if keys3[6] != want3_6 {
		t.Errorf("keys3[6] = %064b, want %064b", keys3[6], want3_6)
	}
}

func TestKeysFirstMove(t *testing.T) {
	b1 := New()
	for i, k := range b1.Keys() {
		if k != 0 {
			t.Errorf("keys[%d] = %d, want 0", i, k)
		}
	}

	b2, _ := Load("21")
	keys2 := b2.Keys()
	want0 := uint64(0b10000000_000_001_00000_00000_00010_01000_00000_00000_00000_00000_00000_00000)
	want4 := uint64(0b10000000_000_000_00000_00000_00001_00000_10000_00000_00000_00000_00000_00000)
	if keys2[0] != want0 {
		t.Errorf("keys2[0] = %064b, want %064b", keys2[0], want0)
	}
	if keys2[4] != want4 {
		t.Errorf("keys2[4] = %064b, want %064b", keys2[4], want4)
	}
}

func TestFromKeyZero(t *testing.T) {
	b := FromKey(0, 0)
	if b.Key() != 0 {
		t.Errorf("FromKey(0,0).Key() = %d, want 0", b.Key())
	}
}

func TestFromKeyRoundTrip(t *testing.T) {
	notations := []string{
		"221400203101122",
		"221400203101123",
		"2214002031011232",
		"0123432100304022",
		"01234321003040223",
	}

	for _, notation := range notations {
		original, err := Load(notation)
		if err != nil {
			t.Fatalf("Load(%q): %v", notation, err)
		}

		copy := FromKey(original.Key(), original.movecount)

		if copy.Key() != original.Key() {
			t.Errorf("%q: round-tripped key differs", notation)
		}
		if copy.stones[0] != original.stones[0] || copy.stones[1] != original.stones[1] {
			t.Errorf("%q: stones = %v, want %v", notation, copy.stones, original.stones)
		}
	}
}

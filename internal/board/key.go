package board

import "math/bits"

// symmetries holds the 7 non-identity mappings of the board's eight-fold
// dihedral symmetry group (4 flips + 3 rotations), each mapping a cell
// index (square*5+cell) to the equivalent index in the transformed board.
// The identity is implicit as Keys()[0].
var symmetries = [7][25]int{
	// Flip diagonal 1-3.
	{24, 21, 22, 23, 20, 9, 6, 7, 8, 5, 14, 11, 12, 13, 10, 19, 16, 17, 18, 15, 4, 1, 2, 3, 0},
	// Flip diagonal 0-4.
	{0, 3, 2, 1, 4, 15, 18, 17, 16, 19, 10, 13, 12, 11, 14, 5, 8, 7, 6, 9, 20, 23, 22, 21, 24},
	// Flip horizontal.
	{18, 19, 17, 15, 16, 23, 24, 22, 20, 21, 13, 14, 12, 10, 11, 3, 4, 2, 0, 1, 8, 9, 7, 5, 6},
	// Flip vertical.
	{6, 5, 7, 9, 8, 1, 0, 2, 4, 3, 11, 10, 12, 14, 13, 21, 20, 22, 24, 23, 16, 15, 17, 19, 18},
	// Rotation 90.
	{18, 15, 17, 19, 16, 3, 0, 2, 4, 1, 13, 10, 12, 14, 11, 23, 20, 22, 24, 21, 8, 5, 7, 9, 6},
	// Rotation 180.
	{24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	// Rotation 270.
	{6, 9, 7, 5, 8, 21, 24, 22, 20, 23, 11, 14, 12, 10, 13, 1, 4, 2, 0, 3, 16, 19, 17, 15, 18},
}

// lastmoveSquare reports whether the square constraint should be included in
// the key: only when the square we must move into next is already full.
func (b *Board) lastmoveSquare() bool {
	return b.IsFull(b.lastmove.Cell)
}

// symmetryMap remaps a 25-bit state or mask value through the given
// permutation.
func symmetryMap(value uint32, perm [25]int) uint64 {
	var out uint32
	for index := 0; index < 25; index++ {
		b := (value >> uint(index)) & 1
		out |= b << uint(perm[index])
	}
	return uint64(out)
}

// Key returns a 64-bit value uniquely identifying this exact board state:
// 1 bit onturn + 7 bits takestreak + 6 bits lastmove (square, cell) +
// 25 bits mask + 25 bits state. The starting position always keys to 0.
func (b *Board) Key() uint64 {
	var key uint64

	if b.IsFirst() {
		return key
	}

	key += uint64(b.onturn) << 63
	key += uint64(b.takestreak) << 56

	key += uint64(b.lastmove.Cell) << 50
	if b.lastmoveSquare() {
		key += uint64(b.lastmove.Square) << 53
	}

	key += uint64(b.mask) << 25
	key += uint64(b.state)

	return key
}

// Keys returns the keys for every board in this state's symmetry orbit,
// with Keys()[0] equal to Key().
func (b *Board) Keys() [8]uint64 {
	var keys [8]uint64

	if b.IsFirst() {
		return keys
	}

	keys[0] = b.Key()
	lastmoveSquare := b.lastmoveSquare()
	lastmoveIndex := int(b.lastmove.Square)*5 + int(b.lastmove.Cell)

	for index, perm := range symmetries {
		k := &keys[index+1]

		*k += uint64(b.onturn) << 63
		*k += uint64(b.takestreak) << 56

		mapped := perm[lastmoveIndex]
		square, cell := mapped/5, mapped%5

		*k += uint64(cell) << 50
		if lastmoveSquare {
			*k += uint64(square) << 53
		}

		*k += symmetryMap(b.mask, perm) << 25
		*k += symmetryMap(b.state, perm)
	}

	return keys
}

// doubleBits are the four cell bits that are each half of a double cell;
// they are set together by Play, so a naive popcount double-counts them.
var doubleBits = [4]uint32{
	1 << 10, // square 2, cell 0
	1 << 11, // square 2, cell 1
	1 << 13, // square 2, cell 3
	1 << 14, // square 2, cell 4
}

func countStones(state uint32) uint8 {
	count := uint8(bits.OnesCount32(state))
	for _, d := range doubleBits {
		if state&d > 0 {
			count--
		}
	}
	return NumberOfStones - count
}

// FromKey reconstructs a board from a key produced by Key, given the
// movecount (not itself encoded in the key). No validity checks are made on
// the key's contents.
func FromKey(key uint64, movecount int32) Board {
	b := New()

	if key == 0 {
		return b
	}

	b.state = uint32(key & (1<<25 - 1))
	key >>= 25

	b.mask = uint32(key & (1<<25 - 1))
	key >>= 25

	cell := uint8(key & 0b111)
	key >>= 3
	square := uint8(key & 0b111)
	key >>= 3
	b.lastmove = &Move{Square: square, Cell: cell}

	b.takestreak = uint8(key & 0b1111111)
	key >>= 7

	b.onturn = Player(key)

	b.movecount = movecount

	b.stones[b.onturn] = countStones(b.state)
	b.stones[b.onturn.Other()] = countStones(b.state ^ b.mask)

	return b
}

// Package board implements a compact bitboard representation of a
// Connect-4 position. A position is stored as two bitmasks over a
// one-dimensional layout in which every column occupies Height+1
// contiguous bits; the extra bit per column is a guard bit that keeps
// carries from spilling into the neighboring column and makes the
// fill height of each column recoverable from the masks alone.
//
// Bit order for the standard 7x6 board:
//
//	 6 13 20 27 34 41 48
//	---------------------
//	 5 12 19 26 33 40 47
//	 4 11 18 25 32 39 46
//	 3 10 17 24 31 38 45
//	 2  9 16 23 30 37 44
//	 1  8 15 22 29 36 43
//	 0  7 14 21 28 35 42
//
// The top row holds the guard bits and is never occupied by a stone.
package board

import "strings"

const (
	// Width is the number of columns on the board.
	Width = 7
	// Height is the number of playable cells per column.
	Height = 6
)

const (
	colBits = Height + 1
	// NumCells is the total number of playable cells.
	NumCells = Width * Height
)

// Position is a Connect-4 position with value semantics; copying the
// struct yields an independent position, which is how the search
// explores sibling branches. All operations are relative to the player
// whose turn it is. Positions with an existing alignment are not
// representable through PlaySequence, since a decided game has nothing
// left to solve.
type Position struct {
	// current holds the stones of the player to move; it is always a
	// subset of mask. The polarity flips on every Play.
	current uint64
	// mask holds all occupied cells.
	mask  uint64
	moves int
}

func bottomMask(col int) uint64 {
	return 1 << (col * colBits)
}

func topMask(col int) uint64 {
	return 1 << (Height - 1 + col*colBits)
}

func columnMask(col int) uint64 {
	return ((1 << Height) - 1) << (col * colBits)
}

// CanPlay returns true if column col (0-indexed) is not full.
func (p *Position) CanPlay(col int) bool {
	return p.mask&topMask(col) == 0
}

// Play drops a stone for the current player into column col. The
// column must be playable; this is not checked, to keep the hot path
// branch-free. Flipping current before placing the stone makes the
// struct represent the opponent's view, so the new stone belongs to
// the player who just moved.
func (p *Position) Play(col int) {
	p.current ^= p.mask
	p.mask |= p.mask + bottomMask(col)
	p.moves++
}

// PlaySequence applies a sequence of 1-based column digits, stopping
// at the first character that is not a digit in range, refers to a
// full column, or would complete an alignment. It returns the number
// of characters consumed; callers detect an invalid sequence by
// comparing the return value with len(seq).
func (p *Position) PlaySequence(seq string) int {
	for i := 0; i < len(seq); i++ {
		col := int(seq[i]) - '1'
		if col < 0 || col >= Width || !p.CanPlay(col) || p.IsWinningMove(col) {
			return i
		}
		p.Play(col)
	}
	return len(seq)
}

// IsWinningMove returns true if the current player completes a
// four-in-a-row by playing column col. The column must be playable.
// No mutation: the hypothetical post-move bitboard is tested directly.
func (p *Position) IsWinningMove(col int) bool {
	pos := p.current | ((p.mask + bottomMask(col)) & columnMask(col))
	return alignment(pos)
}

// alignment reports whether pos contains four aligned stones in any
// direction. Each direction is an O(1) shift-and-AND pair: the first
// AND finds all two-in-a-rows, the second finds two two-in-a-rows at
// double the stride.
func alignment(pos uint64) bool {
	// horizontal
	m := pos & (pos >> colBits)
	if m&(m>>(2*colBits)) != 0 {
		return true
	}
	// diagonal (\)
	m = pos & (pos >> Height)
	if m&(m>>(2*Height)) != 0 {
		return true
	}
	// diagonal (/)
	m = pos & (pos >> (Height + 2))
	if m&(m>>(2*(Height+2))) != 0 {
		return true
	}
	// vertical
	m = pos & (pos >> 1)
	return m&(m>>2) != 0
}

// NbMoves returns the number of moves played since the empty board.
func (p *Position) NbMoves() int {
	return p.moves
}

// Key returns a canonical encoding of the position, injective over all
// reachable positions with the same move parity. The sum works because
// the guard bits let the fill height of every column be recovered from
// current+mask. At most Width*(Height+1) = 49 significant bits for the
// standard board.
func (p *Position) Key() uint64 {
	return p.current + p.mask
}

// String renders the board top row first; 'x' is the player to move,
// 'o' the opponent, '.' an empty cell.
func (p *Position) String() string {
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for col := 0; col < Width; col++ {
			bit := uint64(1) << (row + col*colBits)
			switch {
			case p.mask&bit == 0:
				sb.WriteByte('.')
			case p.current&bit != 0:
				sb.WriteByte('x')
			default:
				sb.WriteByte('o')
			}
			if col != Width-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package solver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/gamesolver/connect4/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func position(t *testing.T, seq string) board.Position {
	t.Helper()
	var p board.Position
	if consumed := p.PlaySequence(seq); consumed != len(seq) {
		t.Fatalf("bad test sequence %q: stopped at %d", seq, consumed)
	}
	return p
}

func TestSolveExploresNodes(t *testing.T) {
	is := is.New(t)
	s := New(0, 6)
	_, err := s.Solve(context.Background(), position(t, "4453"))
	is.NoErr(err)
	is.True(s.ExploredNodeCount() > 0)
}

func TestSolveDeterministic(t *testing.T) {
	is := is.New(t)
	pos := position(t, "4453")

	s := New(0, 6)
	score1, err := s.Solve(context.Background(), pos)
	is.NoErr(err)
	nodes1 := s.ExploredNodeCount()

	// Counters and table are reset per Solve; a rerun must agree.
	score2, err := s.Solve(context.Background(), pos)
	is.NoErr(err)
	is.Equal(score1, score2)
	is.Equal(nodes1, s.ExploredNodeCount())
}

func TestSolveDepthOne(t *testing.T) {
	// At depth 1 every child is a move-count leaf worth nbMoves+1, so
	// the root value is exactly -(nbMoves+1).
	is := is.New(t)
	pos := position(t, "4453")
	s := New(0, 1)
	score, err := s.Solve(context.Background(), pos)
	is.NoErr(err)
	is.Equal(score, -(pos.NbMoves() + 1))
}

func TestSolveMirrorSymmetry(t *testing.T) {
	is := is.New(t)
	seq := "4453"
	mirrored := ""
	for _, ch := range seq {
		mirrored += string('8' - ch + '0')
	}

	score, err := New(0, 6).Solve(context.Background(), position(t, seq))
	is.NoErr(err)
	mirrorScore, err := New(0, 6).Solve(context.Background(), position(t, mirrored))
	is.NoErr(err)
	is.Equal(score, mirrorScore)
}

func TestSolveTimeBudget(t *testing.T) {
	is := is.New(t)
	s := New(time.Nanosecond, board.NumCells)
	start := time.Now()
	score, err := s.Solve(context.Background(), board.Position{})
	is.NoErr(err)
	// Not even depth 1 can complete; the fallback neutral score comes
	// back well before a full-depth search would finish.
	is.Equal(score, 0)
	is.True(time.Since(start) < 2*time.Second)
}

func TestSolveContextCancellation(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(0, 10).Solve(ctx, board.Position{})
	is.True(err != nil)
}

func TestIsLosingMove(t *testing.T) {
	is := is.New(t)

	// The opponent holds the bottom of columns 2..4 and threatens both
	// ends; no reply avoids an immediate loss.
	pos := position(t, "727374")
	for col := 0; col < board.Width; col++ {
		is.True(isLosingMove(pos, col))
	}

	is.True(!isLosingMove(board.Position{}, 3))
}

func TestNegamaxAllChildrenFiltered(t *testing.T) {
	// When every column is filtered by the one-ply loss check, the
	// node's value is the caller-supplied lower bound.
	is := is.New(t)
	s := New(0, 10)
	s.ttable.Reset()
	s.startTime = time.Now()
	value, err := s.negamax(context.Background(), position(t, "727374"), 4, -5, 5)
	is.NoErr(err)
	is.Equal(value, -5)
}

func TestNegamaxCacheHitShortCircuits(t *testing.T) {
	is := is.New(t)
	s := New(0, 10)
	pos := position(t, "44")
	s.ttable.Put(pos.Key(), 7, false)
	s.startTime = time.Now()
	value, err := s.negamax(context.Background(), pos, 8, -infinity, infinity)
	is.NoErr(err)
	is.Equal(value, pos.NbMoves()-7)
	is.Equal(s.nodes.Load(), uint64(1))
}

// Package solver computes the value of a Connect-4 position with an
// iterative-deepening negamax search under wall-clock and depth
// budgets, memoizing bounds in a fixed-capacity transposition table.
package solver

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gamesolver/connect4/board"
)

// columnOrder visits center columns first; they statistically prune
// more of the tree sooner. The sibling visitation order is load-bearing
// for deterministic node counts, don't reorder.
var columnOrder = [board.Width]int{3, 2, 4, 1, 5, 0, 6}

const infinity = math.MaxInt32

// Solver owns all search state for one Solve call at a time: the
// explored-node counter, the wall clock, and a transposition table
// that is wiped at the start of every Solve. It is not safe for
// concurrent use.
type Solver struct {
	timeLimit  time.Duration // zero means unbounded
	depthLimit int

	ttable    *TranspositionTable
	nodes     atomic.Uint64
	startTime time.Time
}

// New creates a solver with the given budgets. A zero or negative
// timeLimit means no wall-clock budget; a zero or negative depthLimit
// deepens until the board can hold no further moves.
func New(timeLimit time.Duration, depthLimit int) *Solver {
	if depthLimit <= 0 {
		depthLimit = board.NumCells
	}
	return &Solver{
		timeLimit:  timeLimit,
		depthLimit: depthLimit,
		ttable:     NewTranspositionTable(DefaultTableSize),
	}
}

// TimeLimit returns the configured wall-clock budget.
func (s *Solver) TimeLimit() time.Duration { return s.timeLimit }

// DepthLimit returns the configured depth budget.
func (s *Solver) DepthLimit() int { return s.depthLimit }

// ExploredNodeCount returns the nodes visited across all depths of the
// most recent Solve call.
func (s *Solver) ExploredNodeCount() uint64 {
	return s.nodes.Load()
}

func (s *Solver) expired() bool {
	return s.timeLimit > 0 && time.Since(s.startTime) >= s.timeLimit
}

// isLosingMove reports whether playing col hands the opponent an
// immediate win. Such columns are skipped entirely during expansion;
// a node where every column is skipped yields its incoming alpha.
func isLosingMove(pos board.Position, col int) bool {
	next := pos
	next.Play(col)
	for reply := 0; reply < board.Width; reply++ {
		if next.CanPlay(reply) && next.IsWinningMove(reply) {
			return true
		}
	}
	return false
}

// negamax evaluates pos to the given remaining depth inside the
// (alpha, beta) window. Expiry of the time budget unwinds by returning
// the neutral score 0; context cancellation unwinds with an error.
//
// The alpha bound is written to the table once per column iteration,
// filtered columns included, so the write after the last column holds
// the node's final bound and earlier writes are provisional.
func (s *Solver) negamax(ctx context.Context, pos board.Position, depth, alpha, beta int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes.Add(1)

	if v := s.ttable.Get(pos.Key()); v != 0 {
		return pos.NbMoves() - int(v), nil
	}

	if depth == 0 || pos.NbMoves() >= board.NumCells {
		// Move-count heuristic leaf value.
		return pos.NbMoves(), nil
	}

	if s.expired() {
		return 0, nil
	}

	for _, col := range columnOrder {
		if pos.CanPlay(col) && !isLosingMove(pos, col) {
			next := pos
			next.Play(col)
			value, err := s.negamax(ctx, next, depth-1, -beta, -alpha)
			if err != nil {
				return 0, err
			}
			score := -value
			if score >= beta {
				return score, nil // beta cutoff
			}
			if score > alpha {
				alpha = score
			}
		}
		s.ttable.Put(pos.Key(), uint8(alpha), false)
	}
	return alpha, nil
}

// Solve runs iterative deepening from depth 1 up to the depth budget
// and returns the score of the deepest fully completed depth. A depth
// that finishes at or past the time budget is discarded in favor of
// its predecessor; if not even depth 1 completes in time, the neutral
// score 0 is returned. The only error path is context cancellation.
func (s *Solver) Solve(ctx context.Context, pos board.Position) (int, error) {
	s.nodes.Store(0)
	s.startTime = time.Now()
	s.ttable.Reset()

	g := &errgroup.Group{}
	done := make(chan struct{})
	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	bestScore := 0
	lastCompleted := 0
	var searchErr error
	for depth := 1; depth <= s.depthLimit; depth++ {
		score, err := s.negamax(ctx, pos, depth, -infinity, infinity)
		if err != nil {
			searchErr = err
			break
		}
		if s.expired() {
			log.Debug().Int("depth", depth).Msg("time-budget-reached")
			break
		}
		bestScore = score
		lastCompleted = depth
		log.Debug().
			Int("depth", depth).
			Uint64("nodes", s.nodes.Load()).
			Msg("depth-completed")
	}
	close(done)
	g.Wait()

	log.Debug().
		Int("last-completed-depth", lastCompleted).
		Int("best-score", bestScore).
		Uint64("nodes", s.nodes.Load()).
		Uint64("ttable-lookups", s.ttable.lookups).
		Uint64("ttable-hits", s.ttable.hits).
		Uint64("ttable-stores", s.ttable.stores).
		Float64("time-elapsed-sec", time.Since(s.startTime).Seconds()).
		Msg("solve-returning")

	return bestScore, searchErr
}

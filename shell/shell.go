// Package shell is an interactive analysis loop around the solver:
// build up a position move by move, inspect it, and score it under
// adjustable budgets.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"github.com/gamesolver/connect4/board"
	"github.com/gamesolver/connect4/config"
	"github.com/gamesolver/connect4/solver"
)

type Shell struct {
	cfg    *config.Config
	solver *solver.Solver
	pos    board.Position
	// played is the move sequence behind pos, kept so `show` can echo
	// it and `undo` can replay all but the last move.
	played string

	l *readline.Instance
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "play <seq> - play a sequence of 1-based column digits, e.g. play 4453\n")
	io.WriteString(w, "show - print the current board; x is the side to move\n")
	io.WriteString(w, "solve - score the current position\n")
	io.WriteString(w, "undo - take back the last move\n")
	io.WriteString(w, "reset - return to the empty board\n")
	io.WriteString(w, "set depth <n> - set the depth budget; 0 for unbounded\n")
	io.WriteString(w, "set time <duration> - set the time budget, e.g. 500ms; 0 for unbounded\n")
	io.WriteString(w, "exit - leave the shell\n")
}

func New(cfg *config.Config) (*Shell, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mc4solve>\033[0m ",
		HistoryFile: "/tmp/c4solve_readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &Shell{
		cfg:    cfg,
		solver: solver.New(cfg.TimeLimit, cfg.DepthLimit),
		l:      l,
	}, nil
}

func (s *Shell) Loop() {
	defer s.l.Close()
	for {
		line, err := s.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			break
		}
		if err := s.execute(line); err != nil {
			showMessage("error: "+err.Error(), s.l.Stderr())
		}
	}
}

func (s *Shell) execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		usage(s.l.Stderr())
	case "show":
		if s.played != "" {
			showMessage("sequence: "+s.played, s.l.Stdout())
		}
		showMessage(s.pos.String(), s.l.Stdout())
	case "play":
		if len(args) != 1 {
			return fmt.Errorf("play needs a move sequence")
		}
		return s.play(args[0])
	case "solve":
		start := time.Now()
		score, err := s.solver.Solve(context.Background(), s.pos)
		if err != nil {
			return err
		}
		showMessage(fmt.Sprintf("score %d, %d nodes, %d µs",
			score, s.solver.ExploredNodeCount(), time.Since(start).Microseconds()), s.l.Stdout())
	case "undo":
		if s.played == "" {
			return fmt.Errorf("no moves to undo")
		}
		seq := s.played[:len(s.played)-1]
		s.pos = board.Position{}
		s.played = ""
		if seq != "" {
			return s.play(seq)
		}
	case "reset":
		s.pos = board.Position{}
		s.played = ""
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: set depth|time <value>")
		}
		return s.set(args[0], args[1])
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
	return nil
}

func (s *Shell) play(seq string) error {
	next := s.pos
	if consumed := next.PlaySequence(seq); consumed != len(seq) {
		return fmt.Errorf("invalid move %d in %q", consumed+1, seq)
	}
	s.pos = next
	s.played += seq
	return nil
}

func (s *Shell) set(what, value string) error {
	switch what {
	case "depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		s.cfg.DepthLimit = n
	case "time":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		s.cfg.TimeLimit = d
	default:
		return fmt.Errorf("unknown setting %q", what)
	}
	// Budgets are constructor-time configuration on the solver.
	s.solver = solver.New(s.cfg.TimeLimit, s.cfg.DepthLimit)
	return nil
}

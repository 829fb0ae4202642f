package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gamesolver/connect4/board"
	"github.com/gamesolver/connect4/config"
	"github.com/gamesolver/connect4/shell"
	"github.com/gamesolver/connect4/solver"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if cfg.ProfilePath != "" {
		f, err := os.Create(cfg.ProfilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if cfg.Interactive {
		sh, err := shell.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		sh.Loop()
		return
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

// run scores one move-sequence record per input line, writing
// "<sequence> <score> <nodes> <elapsed-µs>" per valid record. Invalid
// records are reported with the 1-based index of the offending move
// and skipped; they do not disturb later records.
func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	s := solver.New(cfg.TimeLimit, cfg.DepthLimit)
	ctx := context.Background()

	scanner := bufio.NewScanner(in)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		var pos board.Position
		if consumed := pos.PlaySequence(line); consumed != len(line) {
			log.Error().
				Int("line", lineNumber).
				Int("move", consumed+1).
				Str("sequence", line).
				Msg("invalid move")
			continue
		}
		start := time.Now()
		score, err := s.Solve(ctx, pos)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %d %d %d\n",
			line, score, s.ExploredNodeCount(), time.Since(start).Microseconds())
	}
	return scanner.Err()
}

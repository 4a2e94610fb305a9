package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/moneycalc"
	"github.com/zephyrtronium/moneycalc/internal/config"
)

// ReplCmd reads expressions interactively.
type ReplCmd struct {
	History string `default:"${history}" help:"History file."`
}

const replHelp = `Type an expression to evaluate it. Commands:
  :prec N   set the precision to N fractional digits (0-8)
  :lang L   set the message language to ru or en
  :quit     exit`

func (cmd *ReplCmd) Run(g *Globals) error {
	calc, err := g.calculator()
	if err != nil {
		return err
	}
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if cmd.History != "" {
		if f, err := os.Open(cmd.History); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(cmd.History); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	s := session{calc: calc}
	for {
		line, err := ln.Prompt(s.prompt())
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		out, quit := s.exec(line)
		if quit {
			return nil
		}
		fmt.Println(out)
	}
}

// session is the state of an interactive calculator.
type session struct {
	calc *moneycalc.Calculator
}

func (s *session) prompt() string {
	return fmt.Sprintf("[%d %v]> ", s.calc.Prec(), s.calc.Lang())
}

// exec runs one line of input and returns the text to show.
func (s *session) exec(line string) (out string, quit bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return s.calc.Calculate(line), false
	}
	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "quit", "q", "exit":
		return "", true
	case "help", "h", "?":
		return replHelp, false
	case "prec", "p":
		if arg == "" {
			return strconv.FormatUint(uint64(s.calc.Prec()), 10), false
		}
		p, err := strconv.ParseUint(arg, 10, 8)
		if err != nil || p > config.MaxPrecision {
			return fmt.Sprintf("precision must be a number from 0 to %d", config.MaxPrecision), false
		}
		s.calc = s.calc.Clone(moneycalc.Prec(uint(p)))
		return "precision " + arg, false
	case "lang", "l":
		if arg == "" {
			return s.calc.Lang().String(), false
		}
		l, err := moneycalc.ParseLanguage(arg)
		if err != nil {
			return err.Error(), false
		}
		s.calc = s.calc.Clone(moneycalc.Lang(l))
		return "language " + l.String(), false
	default:
		return "unknown command; type :help for help", false
	}
}

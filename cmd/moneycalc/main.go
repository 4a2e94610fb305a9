package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/moneycalc"
	"github.com/zephyrtronium/moneycalc/internal/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"YAML settings file." type:"path" env:"MONEYCALC_CONFIG"`
	Prec   uint   `short:"p" default:"${precision}" help:"Fractional digits in results (0-8)."`
	Lang   string `short:"l" default:"${lang}" enum:"ru,en" help:"Language of failure messages (ru or en)."`
}

func (g *Globals) calculator() (*moneycalc.Calculator, error) {
	if g.Prec > config.MaxPrecision {
		return nil, fmt.Errorf("precision (%d) must be at most %d", g.Prec, config.MaxPrecision)
	}
	lang, err := moneycalc.ParseLanguage(g.Lang)
	if err != nil {
		return nil, err
	}
	return moneycalc.NewCalculator(moneycalc.Prec(g.Prec), moneycalc.Lang(lang)), nil
}

// EvalCmd evaluates expressions from arguments or input lines.
type EvalCmd struct {
	In     string   `help:"Input file, one expression per line (default stdin if no args given)."`
	Echo   bool     `help:"Print parse trees."`
	Signed bool     `help:"Always print a sign on results."`
	Exprs  []string `arg:"" optional:"" help:"Expressions to evaluate."`
}

func (cmd *EvalCmd) Run(g *Globals) error {
	calc, err := g.calculator()
	if err != nil {
		return err
	}
	var srcs []string
	in, err := infile(cmd.In, len(cmd.Exprs) == 0)
	if err != nil {
		return err
	}
	if in != nil {
		defer in.Close()
		s := bufio.NewScanner(in)
		for s.Scan() {
			if strings.TrimSpace(s.Text()) == "" {
				continue
			}
			srcs = append(srcs, s.Text())
		}
		if err := s.Err(); err != nil {
			return err
		}
	}
	srcs = append(srcs, cmd.Exprs...)
	failed := 0
	for _, src := range srcs {
		if !evalOne(os.Stdout, calc, src, cmd.Echo, cmd.Signed) {
			failed++
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(srcs))
	}
	return nil
}

// evalOne writes the result of one expression and reports whether it
// succeeded.
func evalOne(w io.Writer, calc *moneycalc.Calculator, src string, echo, signed bool) bool {
	if echo {
		if e, err := moneycalc.Parse(src); err == nil {
			fmt.Fprintf(w, "%v : ", e)
		}
	}
	r, err := calc.Evaluate(src)
	if err != nil {
		fmt.Fprintln(w, calc.Message(err))
		return false
	}
	if signed {
		fmt.Fprintln(w, moneycalc.FormatSigned(r, calc.Prec()))
	} else {
		fmt.Fprintln(w, moneycalc.Format(r, calc.Prec()))
	}
	return true
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

var cli struct {
	Globals

	Eval EvalCmd `cmd:"" default:"withargs" help:"Evaluate expressions."`
	Repl ReplCmd `cmd:"" help:"Evaluate expressions interactively."`
}

func main() {
	log.SetFlags(0)
	cfg, err := config.Load("", ".env")
	if err != nil {
		log.Fatal(err)
	}
	kctx := kong.Parse(&cli,
		kong.Name("moneycalc"),
		kong.Description(`
Evaluate money expressions such as "100 + 50 + 2%" or "(100+50)*2".

A percentage added to or subtracted from an amount is a percentage of that
amount. Every operation is rounded half-up to the precision.
`),
		kong.UsageOnError(),
		kong.Vars(cfg.Vars()),
	)
	if cli.Config != "" {
		// Settings from an explicit file only fill in flags left at defaults.
		fc, err := config.Load(cli.Config, ".env")
		kctx.FatalIfErrorf(err)
		applyConfig(kctx, fc)
	}
	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}

// applyConfig replaces global flags which were not given on the command line
// with values from cfg.
func applyConfig(kctx *kong.Context, cfg config.Config) {
	set := make(map[string]bool)
	for _, f := range kctx.Flags() {
		if f.Set {
			set[f.Name] = true
		}
	}
	if !set["prec"] {
		cli.Prec = cfg.Precision
	}
	if !set["lang"] {
		cli.Lang = cfg.Language().String()
	}
	if !set["history"] {
		cli.Repl.History = cfg.History
	}
}

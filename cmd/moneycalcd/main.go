package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"

	"github.com/zephyrtronium/moneycalc/internal/config"
	"github.com/zephyrtronium/moneycalc/internal/server"
)

// CLI holds the daemon's flags.
type CLI struct {
	Config string `help:"YAML settings file." type:"path"`
	Addr   string `default:"${addr}" help:"Listen address."`
	Debug  bool   `help:"Run gin in debug mode."`
}

// parseArgs parses command-line arguments over the settings in cfg. Settings
// from an explicit --config file replace cfg and fill in flags that were not
// given on the command line.
func parseArgs(args []string, cfg config.Config, opts ...kong.Option) (CLI, config.Config, error) {
	var cli CLI
	opts = append([]kong.Option{
		kong.Name("moneycalcd"),
		kong.Description("Serve money expression calculations over HTTP."),
		kong.Vars(cfg.Vars()),
	}, opts...)
	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return cli, cfg, err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return cli, cfg, err
	}
	if cli.Config == "" {
		return cli, cfg, nil
	}
	cfg, err = config.Load(cli.Config, ".env")
	if err != nil {
		return cli, cfg, err
	}
	if !flagSet(kctx, "addr") {
		cli.Addr = cfg.Addr
	}
	return cli, cfg, nil
}

// flagSet reports whether the named flag was given explicitly.
func flagSet(kctx *kong.Context, name string) bool {
	for _, f := range kctx.Flags() {
		if f.Name == name {
			return f.Set
		}
	}
	return false
}

func main() {
	log.SetFlags(log.LstdFlags)
	cfg, err := config.Load("", ".env")
	if err != nil {
		log.Fatal(err)
	}
	cli, cfg, err := parseArgs(os.Args[1:], cfg)
	if err != nil {
		log.Fatal(err)
	}
	if !cli.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cli.Addr,
		Handler:           server.New(cfg.Calculator()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()
	log.Printf("listening on %s (precision %d, lang %s)", srv.Addr, cfg.Precision, cfg.Language())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

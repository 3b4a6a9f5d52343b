package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"semnet/config"
	"semnet/network"
	"semnet/render"
	"semnet/table"
)

func newLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// open loads the configuration and the domain file named by the first
// argument.
func open(ctx *cli.Context) (*network.Network, config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, cfg, err
	}
	if cfg, err = config.FromEnv(cfg); err != nil {
		return nil, cfg, err
	}
	if ctx.Bool("debug") {
		cfg.Debug = true
	}
	if ctx.Bool("strict") {
		cfg.StrictFacts = true
	}

	if ctx.Args().Len() < 1 {
		return nil, cfg, errors.New("missing domain file argument")
	}
	net, err := network.Load(ctx.Args().First(), cfg.NetworkOptions(newLogger(cfg)))
	if err != nil {
		return nil, cfg, err
	}
	return net, cfg, nil
}

func replAction(ctx *cli.Context) error {
	net, cfg, err := open(ctx)
	if err != nil {
		return err
	}
	return runREPL(&session{net: net, cfg: cfg, out: ctx.App.Writer})
}

func queryAction(ctx *cli.Context) error {
	net, _, err := open(ctx)
	if err != nil {
		return err
	}
	if ctx.Args().Len() < 2 {
		return errors.New("query needs at least one <?:?:?> pattern")
	}

	for _, q := range ctx.Args().Slice()[1:] {
		a, err := net.Query(q)
		if err != nil {
			return err
		}
		printAnswer(ctx.App.Writer, a)
	}
	return nil
}

func tableAction(ctx *cli.Context) error {
	net, cfg, err := open(ctx)
	if err != nil {
		return err
	}
	width := cfg.NameWidth
	if ctx.IsSet("width") {
		width = ctx.Int("width")
	}
	m := net.Closed()
	if ctx.Bool("asserted") {
		m = net.Asserted()
	}
	var names func(int) string
	if ctx.Bool("names") {
		names = net.RelationName
	}
	return table.Write(ctx.App.Writer, m, net.Labels(width), names)
}

func renderAction(ctx *cli.Context) error {
	net, cfg, err := open(ctx)
	if err != nil {
		return err
	}
	name := cfg.RenderFormat
	if ctx.IsSet("format") {
		name = ctx.String("format")
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}
	return render.File(ctx.String("out"), net.AssertedTriples(), format)
}

func setupAction(ctx *cli.Context) error {
	net, _, err := open(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.App.Writer, net.Setup())
	return err
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "semnet",
		Usage:     "load a semantic network and query its closure",
		ArgsUsage: "<domain file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read settings from this YAML file",
				EnvVars: []string{"SEMNET_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log the parsed domain and the closed matrix",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject a second fact for the same pair of objects",
			},
		},
		Action: replAction,
		ExitErrHandler: func(ctx *cli.Context, err error) {
			if err != nil {
				fmt.Fprintln(ctx.App.ErrWriter, err.Error())
			}
		},
		Commands: []*cli.Command{
			{
				Name:      "repl",
				Usage:     "answer queries interactively",
				ArgsUsage: "<domain file>",
				Action:    replAction,
			},
			{
				Name:      "query",
				Usage:     "answer one or more patterns and exit",
				ArgsUsage: "<domain file> <pattern>...",
				Action:    queryAction,
			},
			{
				Name:      "table",
				Usage:     "print the relation matrix",
				ArgsUsage: "<domain file>",
				Action:    tableAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "asserted",
						Usage: "print the matrix before closure",
					},
					&cli.BoolFlag{
						Name:  "names",
						Usage: "print relation names instead of ids",
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "cut object names to this many characters, 0 for no limit",
					},
				},
			},
			{
				Name:      "render",
				Usage:     "draw the asserted facts with Graphviz",
				ArgsUsage: "<domain file>",
				Action:    renderAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "write the image to this file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "png, svg, jpg or dot",
					},
				},
			},
			{
				Name:      "setup",
				Usage:     "print the domain file as loaded",
				ArgsUsage: "<domain file>",
				Action:    setupAction,
			},
		},
	}
}

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"semnet/config"
	"semnet/network"
	"semnet/render"
	"semnet/table"
)

const help = `Type a query as <subject>:<relation>:<object>, using ? for any value.
  1:1:3      does object 1 relate to object 3 by relation 1?
  1:?:?      everything object 1 relates to
  ?:2:?      every pair related by relation 2
Other commands:
  setup                    print the domain file as loaded
  table [asserted|names]   print the closed (or asserted) matrix
  render <file> [format]   draw the asserted facts
  help                     show this text
  q                        leave`

type session struct {
	net *network.Network
	cfg config.Config
	out io.Writer
}

func printAnswer(w io.Writer, a *network.Answer) {
	if a.Membership {
		if a.Holds {
			fmt.Fprintln(w, "YES!")
		} else {
			fmt.Fprintln(w, "NO.")
		}
		return
	}
	if len(a.Triples) == 0 {
		fmt.Fprintln(w, "Nothing matches.")
		return
	}
	for _, t := range a.Triples {
		fmt.Fprintln(w, t.String())
	}
}

// exec handles one line of input. It returns false once the session
// should end.
func (s *session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return false, nil
	case "help", "h":
		fmt.Fprintln(s.out, help)
	case "setup":
		fmt.Fprint(s.out, s.net.Setup())
	case "table":
		m := s.net.Closed()
		var names func(int) string
		for _, opt := range fields[1:] {
			switch opt {
			case "asserted":
				m = s.net.Asserted()
			case "closed":
			case "names":
				names = s.net.RelationName
			default:
				return true, fmt.Errorf("unknown table option %q, want asserted, closed or names", opt)
			}
		}
		return true, table.Write(s.out, m, s.net.Labels(s.cfg.NameWidth), names)
	case "render":
		if len(fields) < 2 {
			return true, errors.New("render needs a file name, as in: render network.png")
		}
		name := s.cfg.RenderFormat
		if len(fields) > 2 {
			name = fields[2]
		}
		format, err := render.ParseFormat(name)
		if err != nil {
			return true, err
		}
		if err := render.File(fields[1], s.net.AssertedTriples(), format); err != nil {
			return true, err
		}
		fmt.Fprintf(s.out, "Drew %d facts to %s.\n", len(s.net.Facts()), fields[1])
	default:
		a, err := s.net.Query(strings.ToLower(strings.TrimSpace(line)))
		if err != nil {
			return true, err
		}
		printAnswer(s.out, a)
	}
	return true, nil
}

func runREPL(s *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return fmt.Errorf("failed to start the prompt: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	fmt.Fprintln(s.out, `Network loaded. Type "help" to see what you can ask.`)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil { // io.EOF
			return nil
		}

		more, err := s.exec(line)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if !more {
			return nil
		}
	}
}

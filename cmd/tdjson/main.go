// Command tdjson talks to TDLib through its JSON interface from the shell.
//
//	tdjson --execute '{"@type":"getTextEntities","text":"@telegram"}'
//	tdjson --listen 30s --journal session.tdj
//	tdjson --dump session.tdj
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
	"github.com/tdjson-go/tdjson/pkg/tdjson/journal"
	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

type options struct {
	config  string
	journal string
	dump    string
	execute []string
	send    []string
	listen  time.Duration
	verbose bool
	version bool
}

func main() {
	var opts options
	fs := pflag.NewFlagSet("tdjson", pflag.ExitOnError)
	fs.StringVarP(&opts.config, "config", "c", "", "client configuration file (YAML, JSON or JSONC)")
	fs.StringVar(&opts.journal, "journal", "", "record all traffic to this journal file")
	fs.StringVar(&opts.dump, "dump", "", "print a journal file as JSON lines and exit")
	fs.StringArrayVarP(&opts.execute, "execute", "e", nil, "execute a request synchronously and print the reply (repeatable)")
	fs.StringArrayVarP(&opts.send, "send", "s", nil, "send a request asynchronously (repeatable)")
	fs.DurationVarP(&opts.listen, "listen", "l", 0, "print incoming responses and updates for this long")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log wrapper activity to stderr")
	fs.BoolVar(&opts.version, "version", false, "print versions and exit")
	_ = fs.Parse(os.Args[1:])

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tdjson: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.dump != "" {
		return dump(opts.dump, out)
	}

	zl := zap.NewNop()
	if opts.verbose {
		var err error
		if zl, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = zl.Sync() }()
	}
	log := logging.NewZap(zl)

	cfg := tdjson.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = tdjson.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	factory := tdjson.NativeFactory(tdjson.LinkedNative)
	if opts.journal != "" {
		f, err := os.Create(opts.journal) // #nosec G304 -- operator-supplied output path
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer f.Close()
		w, err := journal.NewWriter(f)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				log.Error(context.Background(), "journal close failed", "error", cerr)
			}
		}()
		factory = journal.Recording(factory, w)
	}

	if err := cfg.ApplyNativeLog(); err != nil && !errors.Is(err, tdjson.ErrNotBuilt) {
		return fmt.Errorf("native log: %w", err)
	}

	c, err := tdjson.NewClient(append(cfg.Options(), tdjson.WithNative(factory), tdjson.WithLogger(log))...)
	if err != nil {
		if errors.Is(err, tdjson.ErrNotBuilt) {
			fmt.Fprintf(out, "tdjson %s\nlibtdjson unavailable: %v (build with -tags tdjson and cgo enabled)\n", tdjson.WrapperVersion(), err)
			return nil
		}
		return err
	}
	defer func() { _ = c.Close() }()

	if opts.version {
		v, err := tdjson.NativeVersion(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "tdjson %s\nTDLib %s\n", tdjson.WrapperVersion(), v)
		return nil
	}

	for _, req := range opts.execute {
		v, err := c.Execute(req)
		if err != nil {
			return err
		}
		if v.Empty() {
			fmt.Fprintln(out, "(no reply)")
			continue
		}
		fmt.Fprintln(out, v.String())
	}
	for _, req := range opts.send {
		if err := c.Send(req); err != nil {
			return err
		}
	}
	if opts.listen > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return listen(ctx, c, opts.listen, out)
	}
	return nil
}

// listen prints everything received until d elapses or ctx is cancelled.
func listen(ctx context.Context, c *tdjson.Client, d time.Duration, out io.Writer) error {
	deadline := time.Now().Add(d)
	for ctx.Err() == nil {
		left := time.Until(deadline)
		if left <= 0 {
			return nil
		}
		v, err := c.Receive(min(left, c.Timeout()))
		switch {
		case errors.Is(err, tdjson.ErrEncoding):
			fmt.Fprintf(os.Stderr, "tdjson: skipping reply: %v\n", err)
		case err != nil:
			return err
		case !v.Empty():
			fmt.Fprintln(out, v.String())
		}
	}
	return nil
}

type dumpLine struct {
	Seq     uint64    `json:"seq"`
	Client  uint32    `json:"client"`
	Dir     string    `json:"dir"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

func dump(path string, out io.Writer) error {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied input path
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	r, err := journal.NewReader(f)
	if err != nil {
		return err
	}
	defer r.Close()

	enc := json.NewEncoder(out)
	for e, err := range r.All() {
		if err != nil {
			return err
		}
		line := dumpLine{Seq: e.Seq, Client: e.Client, Dir: e.Dir.String(), At: e.At}
		if json.Valid(e.Payload) {
			line.Payload = json.RawMessage(e.Payload)
		} else {
			line.Payload = string(e.Payload)
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/inspect/internal/core/inspector"
	"github.com/zeusync/inspect/internal/core/serialization"
	"github.com/zeusync/inspect/internal/injector"
)

type Options struct {
	ConfigPath string `short:"c" long:"config" description:"inspector config file (yaml or json)"`
	Depth      int    `short:"d" long:"depth" description:"maximum tree depth, overrides the config"`
	Hidden     bool   `long:"hidden" description:"include hidden fields"`
	Expand     bool   `short:"e" long:"expand" description:"expand game object and resource references"`
	Path       string `short:"p" long:"path" description:"print only the property at this path, e.g. Inventory/Items[0]/Count"`
	Set        string `short:"s" long:"set" description:"JSON literal assigned to --path before printing"`
	Undo       bool   `short:"u" long:"undo" description:"undo the --set assignment and print again"`
}

func (o *Options) config() (*inspector.Config, error) {
	cfg := inspector.DefaultConfig()
	if o.ConfigPath != "" {
		loaded, err := inspector.LoadFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if o.Depth > 0 {
		cfg.MaxDepth = o.Depth
	}
	cfg.IncludeHidden = cfg.IncludeHidden || o.Hidden
	cfg.ExpandReferences = cfg.ExpandReferences || o.Expand
	return &cfg, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	opts := &Options{}
	if _, err := flags.ParseArgs(opts, args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	if (opts.Set != "" || opts.Undo) && opts.Path == "" {
		return errors.New("--set and --undo require --path")
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	app, err := injector.InitializeApp(*cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize")
	}

	scene := newScene()
	if opts.Path == "" {
		root, err := app.Inspector.Inspect(scene)
		if err != nil {
			return err
		}
		return inspector.Dump(out, root)
	}

	obj, err := serialization.NewObject(scene)
	if err != nil {
		return err
	}
	prop, err := obj.FindProperty(opts.Path)
	if err != nil {
		return err
	}

	if opts.Set != "" {
		if err := app.History.Snapshot(prop); err != nil {
			return errors.Wrap(err, "failed to record snapshot")
		}
		if err := assign(prop, opts.Set); err != nil {
			return err
		}
	}
	if err := printProperty(out, prop); err != nil {
		return err
	}

	if opts.Undo {
		if _, err := app.History.Undo(); err != nil {
			return errors.Wrap(err, "failed to undo")
		}
		return printProperty(out, prop)
	}
	return nil
}

// assign decodes literal into a value of the property's Go type and stores it.
func assign(prop *serialization.Property, literal string) error {
	target := reflect.New(prop.InternalType())
	if err := json.Unmarshal([]byte(literal), target.Interface()); err != nil {
		return errors.Wrapf(err, "cannot parse %q as %v", literal, prop.InternalType())
	}
	return serialization.SetValue(prop, target.Elem().Interface())
}

func printProperty(out io.Writer, prop *serialization.Property) error {
	value, err := serialization.GetValueCopy[any](prop)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	err = enc.Encode(map[string]any{
		"path":  prop.Path().String(),
		"type":  prop.Type().String(),
		"value": value,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode property")
	}
	return enc.Close()
}

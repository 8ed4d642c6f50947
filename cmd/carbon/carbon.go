package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/kalafut/q"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/eq99/carbon"
	"github.com/eq99/carbon/internal/config"
	"github.com/eq99/carbon/internal/objstore"
)

var CLI struct {
	Config string `type:"path" help:"Config file (default: search ./.carbon and . for carbon.yaml)."`
	Trace  bool   `help:"Dump candidate and picked blocks with q."`

	Make struct {
		BeforeFile *os.File `arg help:"Before file"`
		AfterFile  *os.File `arg help:"After file"`
		Store      bool     `help:"Also store the after file and the patch in the object store."`
	} `cmd help:"Make a patch file to turn 'before' into 'after'."`

	Apply struct {
		BeforeFile *os.File `arg help:"Before filename"`
		PatchFile  *os.File `arg help:"Patch filename"`
		Verify     bool     `help:"Check the removed lines recorded in the patch against 'before'."`
	} `cmd help:"Apply a patch file."`

	Show struct {
		File *os.File `arg help:"Document to show"`
	} `cmd help:"Print a document with line numbers."`

	Inspect struct {
		PatchFile *os.File `arg help:"Patch filename"`
		Color     string   `help:"Color output: auto, always or never. Overrides render.color."`
	} `cmd help:"Print a patch in a readable form."`

	Put struct {
		File *os.File `arg help:"File to store"`
	} `cmd help:"Store a file in the object store and print its hash."`

	Get struct {
		Hash string `arg help:"Object hash"`
	} `cmd help:"Write a stored object to stdout."`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Description("Line-based patches between text documents."))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fatal("error loading config: %s", err)
	}

	store := objstore.New(afero.NewOsFs(), cfg.Store.Root)
	store.Level = cfg.Store.Compression

	var opts []carbon.FuncOption
	if cfg.Diff.AllowEmpty {
		opts = append(opts, carbon.WithEmptyPatch())
	}
	if CLI.Trace {
		opts = append(opts, carbon.WithTracer(q.Q))
	}

	switch ctx.Command() {
	case "make <before-file> <after-file>":
		var s *objstore.Store
		if CLI.Make.Store {
			s = store
		}
		if err := makePatch(CLI.Make.BeforeFile, CLI.Make.AfterFile, os.Stdout, os.Stderr, s, opts); err != nil {
			fatal("error creating patch: %s", err)
		}
	case "apply <before-file> <patch-file>":
		if err := applyPatch(CLI.Apply.BeforeFile, CLI.Apply.PatchFile, os.Stdout, CLI.Apply.Verify); err != nil {
			fatal("error applying patch: %s", err)
		}
	case "show <file>":
		if err := showDocument(CLI.Show.File, os.Stdout); err != nil {
			fatal("error showing document: %s", err)
		}
	case "inspect <patch-file>":
		mode := cfg.Render.Color
		if CLI.Inspect.Color != "" {
			mode = CLI.Inspect.Color
		}
		color, err := useColor(mode, os.Stdout)
		if err != nil {
			fatal("%s", err)
		}
		if err := inspectPatch(CLI.Inspect.PatchFile, os.Stdout, color); err != nil {
			fatal("error reading patch: %s", err)
		}
	case "put <file>":
		if err := putObject(CLI.Put.File, os.Stdout, store); err != nil {
			fatal("error storing object: %s", err)
		}
	case "get <hash>":
		if err := getObject(CLI.Get.Hash, os.Stdout, store); err != nil {
			fatal("error reading object: %s", err)
		}
	default:
		panic(ctx.Command())
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// useColor resolves a render.color mode against the output stream.
func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto:
		if f, ok := out.(*os.File); ok && f != nil {
			return term.IsTerminal(int(f.Fd())), nil
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

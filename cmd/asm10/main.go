// Command asm10 assembles files for a 10-bit-word imaginary processor
// into object, entries, and externs files. See SPEC_FULL.md §6 for the
// external interfaces this implements.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmofishsauce/asm10/internal/config"
	"github.com/gmofishsauce/asm10/internal/diag"
	"github.com/gmofishsauce/asm10/internal/objfile"
	"github.com/gmofishsauce/asm10/internal/session"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			diag.Fatal(fmt.Sprint(r))
		}
	}()

	verbose := flag.Bool("v", false, "print a decoded-word dump after a successful assembly")
	configPath := flag.String("c", "", "path to a TOML configuration file (default: platform config dir)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: at least one input file is required")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter(os.Stderr)
	if !cfg.Diagnostics.Color {
		reporter.SetColor(false)
	}

	for _, name := range flag.Args() {
		processFile(name, cfg, reporter, *verbose)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// processFile assembles one named file and writes its outputs. A
// per-file failure is reported and the batch continues, matching
// original_source/main.c's process_files driver.
func processFile(name string, cfg *config.Config, reporter *diag.Reporter, verbose bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	srcPath := base + ".as"

	f, err := os.Open(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unable to open the file %q.\n", srcPath)
		return
	}
	defer f.Close()

	fmt.Printf("Assembling %s...\n", srcPath)

	sess := session.New(cfg.Memory.BaseAddress, cfg.Memory.Size, reporter)
	if !sess.Run(f) {
		fmt.Printf("%s: failed, no output files written\n", srcPath)
		return
	}

	if err := objfile.WriteObject(base+".ob", sess.Mem.Base(), sess.Mem.Code(), sess.Mem.Data()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if sess.EntriesOK() {
		if err := objfile.WriteEntries(base+".ent", sess.Entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	} else {
		objfile.Remove(base + ".ent")
	}

	if err := objfile.WriteExterns(base+".ext", sess.Externs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	fmt.Printf("%s: done\n", srcPath)

	if verbose {
		dumpDecoded(sess)
	}
}

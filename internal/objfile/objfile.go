// Package objfile writes the three assembler output files: the object
// file (.ob), the entries file (.ent), and the externs file (.ext).
// Layouts are grounded in original_source/memory_manager.c's
// save_memory_to_file and original_source/second_pass_processor.c's
// create_entries_file / create_externs_files.
package objfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gmofishsauce/asm10/internal/session"
	"github.com/gmofishsauce/asm10/internal/word"
)

// WriteObject writes the .ob file: a header line of two awkward-base
// counts (IC then DC, tab-separated, no header newline terminator
// beyond the data that follows), then one "ADDR\tWORD" line per code
// word followed by one per data word, addresses continuing upward
// from the code section into the data section.
func WriteObject(path string, codeBase int, code, data []word.Word) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the file %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\t%s", word.EncodeInt(len(code)), word.EncodeInt(len(data)))

	addr := codeBase
	for _, c := range code {
		fmt.Fprintf(w, "\n%s\t%s", word.EncodeInt(addr), c.Encode())
		addr++
	}
	for _, d := range data {
		fmt.Fprintf(w, "\n%s\t%s", word.EncodeInt(addr), d.Encode())
		addr++
	}
	return w.Flush()
}

// WriteEntries writes the .ent file: one "NAME ADDR" line per entry,
// in source order. The file is removed (never left on disk) if no
// lines were written, matching the original's behavior of removing an
// empty or fully-failed entries file.
func WriteEntries(path string, entries []session.ResolvedSymbol) error {
	return writeNameAddrFile(path, entries)
}

// WriteExterns writes the .ext file: one "NAME ADDR" line per extern
// use site that resolved to an EXTERN symbol, in source order. Removed
// if empty.
func WriteExterns(path string, externs []session.ResolvedSymbol) error {
	return writeNameAddrFile(path, externs)
}

func writeNameAddrFile(path string, entries []session.ResolvedSymbol) error {
	if len(entries) == 0 {
		os.Remove(path)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the file %q", path)
	}

	var werr error
	func() {
		defer f.Close()
		w := bufio.NewWriter(f)
		for _, e := range entries {
			fmt.Fprintf(w, "%s %s\n", e.Name, word.EncodeInt(e.Address))
		}
		werr = w.Flush()
	}()
	return werr
}

// Remove deletes path if it exists, ignoring a not-exist error. Used
// by the driver to delete a stale .ent file when an entry request
// failed to resolve and the entries file is suppressed.
func Remove(path string) {
	os.Remove(path)
}

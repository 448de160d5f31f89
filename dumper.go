package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jcorbin/forthnucleus/internal/runeio"
)

// Dump writes routine to w in a one-opcode-per-line assembler notation,
// mirroring the disassembly idea of the internal/compile asm package found
// elsewhere in the pack (a textual form of a compiled program, one mnemonic
// per line, operand alongside it): each line is "pc  MNEMONIC  operand".
// String Data operands pass through runeio.WriteANSIString, which rewrites
// C1 control characters in a `."` literal as 7-bit escape sequences; ASCII,
// including C0 control characters, is written unchanged.
func Dump(w io.Writer, routine Routine) error {
	for pc, cell := range routine {
		if _, err := fmt.Fprintf(w, "%4d  %-15s", pc, mnemonic(cell.kind)); err != nil {
			return err
		}
		switch cell.kind {
		case cellData:
			if err := dumpData(w, cell.data); err != nil {
				return err
			}
		case cellCall:
			if _, err := fmt.Fprintf(w, " %s", cell.name); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func dumpData(w io.Writer, v Value) error {
	if v.IsInt() {
		_, err := fmt.Fprintf(w, " %d", v.Int64())
		return err
	}
	if _, err := io.WriteString(w, ` "`); err != nil {
		return err
	}
	if _, err := runeio.WriteANSIString(w, v.Display()); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}

func mnemonic(k cellKind) string {
	switch k {
	case cellExec:
		return "EXEC"
	case cellCompiler:
		return "COMPILER"
	case cellData:
		return "DATA"
	case cellCall:
		return "CALL"
	case cellReturn:
		return "RETURN"
	case cellBranch:
		return "BRANCH"
	case cellBranchIfZero:
		return "BRANCH0"
	case cellBranchIfNotZero:
		return "BRANCHNZ"
	default:
		return "???"
	}
}

// DumpDictionary writes every word currently bound in dict to w, each
// preceded by a ": NAME" header, in alphabetical order for a stable
// listing (Dictionary.Names makes no promise about order itself).
func DumpDictionary(w io.Writer, dict *Dictionary) error {
	names := dict.Names()
	sort.Strings(names)
	for _, name := range names {
		routine, err := dict.Get(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ": %s\n", name); err != nil {
			return err
		}
		if err := Dump(w, routine); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strings.Repeat("-", 40)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

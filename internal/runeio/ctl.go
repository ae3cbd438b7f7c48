// Package runeio names runes for diagnostics, so that an unexpected control
// character in a script shows up as something a person can read.
package runeio

import (
	"strconv"
	"strings"
	"unicode"
)

// Mnemonics for the control blocks, in codepoint order.
const (
	c0Names = "NUL SOH STX ETX EOT ENQ ACK BEL BS HT NL VT NP CR SO SI " +
		"DLE DC1 DC2 DC3 DC4 NAK SYN ETB CAN EM SUB ESC FS GS RS US"
	c1Names = "PAD HOP BPH NBH IND NEL SSA ESA HTS HTJ VTS PLD PLU RI SS2 SS3 " +
		"DCS PU1 PU2 STS CCH MW SPA EPA SOS SGCI SCI CSI ST OSC PM APC"
)

// ControlNames maps the C0 and C1 control runes, along with space and
// delete, to their bracketed mnemonic, e.g. "<ESC>".
var ControlNames = map[rune]string{
	0x20: "<SP>",
	0x7f: "<DEL>",
}

func init() {
	for base, names := range map[rune]string{0x00: c0Names, 0x80: c1Names} {
		for i, name := range strings.Fields(names) {
			ControlNames[base+rune(i)] = "<" + name + ">"
		}
	}
}

// CaretForm computes the ^-escaped printable form of a control rune, or ""
// for any other rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Describe renders r for an error message: control runes by mnemonic and
// caret form (e.g. "<ESC> ^["), the space as "<SP>", and any other
// printable rune single-quoted.
func Describe(r rune) string {
	if name, ok := ControlNames[r]; ok {
		if caret := CaretForm(r); caret != "" {
			return name + " " + caret
		}
		return name
	}
	if r == 0xfeff {
		return "<BOM>"
	}
	if !unicode.IsPrint(r) {
		return strconv.QuoteRuneToASCII(r)
	}
	return strconv.QuoteRune(r)
}

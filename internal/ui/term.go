package ui

import "golang.org/x/term"

// FdFile is anything backed by a file descriptor, such as *os.File.
type FdFile interface {
	Fd() uintptr
}

// IsTTY reports whether f refers to a terminal.
func IsTTY(f FdFile) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TermWidth returns the terminal width in columns, or 80 if it cannot be determined.
func TermWidth(f FdFile) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

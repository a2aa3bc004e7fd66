package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/ui"
)

// tab selects which list is shown.
type tab int

const (
	tabAll tab = iota
	tabCopied
	tabExisted
	tabFailed
	numTabs
)

var tabNames = [numTabs]string{"All", "Copied", "Already existed", "Failed"}

// entry is one handled file.
type entry struct {
	src    string
	dst    string
	status event.Type // FileCopied, FileExisted or FileFailed
	errMsg string
	pass   int
}

// feedView is a scrollable list of handled files.
type feedView struct {
	entries      []entry
	scrollOffset int  // viewport offset into entries
	autoScroll   bool // follow new entries
}

func newFeedView() feedView {
	return feedView{autoScroll: true}
}

func (f *feedView) add(e entry) {
	f.entries = append(f.entries, e)
}

// dropBefore removes entries recorded before pass.
func (f *feedView) dropBefore(pass int) {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.pass >= pass {
			kept = append(kept, e)
		}
	}
	f.entries = kept
}

// scrollDown moves the viewport down one line and disables autoScroll.
func (f *feedView) scrollDown() {
	f.autoScroll = false
	if f.scrollOffset < f.lineCount()-1 {
		f.scrollOffset++
	}
}

func (f *feedView) lineCount() int {
	n := len(f.entries)
	for _, e := range f.entries {
		if e.status == event.FileFailed {
			n++
		}
	}
	return n
}

// scrollUp moves the viewport up one line and disables autoScroll.
func (f *feedView) scrollUp() {
	f.autoScroll = false
	if f.scrollOffset > 0 {
		f.scrollOffset--
	}
}

// scrollToTop jumps to the first entry.
func (f *feedView) scrollToTop() {
	f.autoScroll = false
	f.scrollOffset = 0
}

// scrollToBottom jumps to the most recent entry and re-enables autoScroll.
func (f *feedView) scrollToBottom() {
	f.autoScroll = true
}

// lines renders every entry; failures take a second line for the error.
func (f *feedView) lines() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		style := statusStyle(e.status)
		out = append(out, fmt.Sprintf("  %s  %s %s %s",
			style.Render(statusIcon(e.status)),
			style.Render(e.src),
			styleDivider.Render(">"),
			styledPath(e.dst, style),
		))
		if e.status == event.FileFailed {
			out = append(out, "       "+styleFailed.Render(e.errMsg))
		}
	}
	return out
}

func (f *feedView) view(height int) string {
	lines := f.lines()
	if height < 1 {
		height = 1
	}

	maxOffset := max(len(lines)-height, 0)
	if f.autoScroll {
		f.scrollOffset = maxOffset
	}
	f.scrollOffset = min(max(f.scrollOffset, 0), maxOffset)

	end := min(f.scrollOffset+height, len(lines))
	var b strings.Builder
	for _, l := range lines[f.scrollOffset:end] {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	// Pad so the footer stays put.
	for range height - (end - f.scrollOffset) {
		b.WriteByte('\n')
	}
	return b.String()
}

// report converts the list into report entries.
func (f *feedView) report() []ui.ReportEntry {
	out := make([]ui.ReportEntry, 0, len(f.entries))
	for _, e := range f.entries {
		re := ui.ReportEntry{Src: e.src, Dst: e.dst}
		if e.errMsg != "" {
			re.Err = errors.New(e.errMsg)
		}
		out = append(out, re)
	}
	return out
}

func statusIcon(t event.Type) string {
	switch t {
	case event.FileCopied:
		return "✓"
	case event.FileExisted:
		return "="
	case event.FileFailed:
		return "✗"
	}
	return "?"
}

func statusStyle(t event.Type) lipgloss.Style {
	switch t {
	case event.FileExisted:
		return styleExisted
	case event.FileFailed:
		return styleFailed
	}
	return styleCopied
}

// styledPath dims the directory part of path and renders the name in style.
func styledPath(path string, style lipgloss.Style) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "." || dir == "" {
		return style.Render(base)
	}
	return styleFileDir.Render(dir+"/") + style.Render(base)
}

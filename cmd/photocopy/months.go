package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bamsammich/photocopy/internal/months"
)

// defaultMonthsFileName is looked up next to the executable when --months
// is not given.
const defaultMonthsFileName = "photocopy.ini"

type monthOverride struct {
	key   string
	label string
}

// monthFlag is a repeatable pflag.Value collecting Key=Label overrides in
// CLI order.
type monthFlag struct {
	overrides []monthOverride
}

var _ pflag.Value = (*monthFlag)(nil)

func (f *monthFlag) String() string {
	parts := make([]string, len(f.overrides))
	for i, o := range f.overrides {
		parts[i] = o.key + "=" + o.label
	}
	return strings.Join(parts, ",")
}

func (*monthFlag) Type() string { return "Key=Label" }

func (f *monthFlag) Set(val string) error {
	key, label, ok := strings.Cut(val, "=")
	if !ok {
		return fmt.Errorf("expected Key=Label, got %q", val)
	}
	key = strings.TrimSpace(key)
	var probe months.Table
	if !probe.Set(key, "x") {
		return fmt.Errorf("unknown month %q (use %s..%s)", key, months.Keys[0], months.Keys[11])
	}
	f.overrides = append(f.overrides, monthOverride{key: key, label: strings.TrimSpace(label)})
	return nil
}

// defaultMonthsFile returns photocopy.ini beside the running binary, or ""
// when the executable path is unknown.
func defaultMonthsFile() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), defaultMonthsFileName)
}

// monthSources lists the override layers in increasing precedence.
type monthSources struct {
	Config       map[string]string // [months] from config.toml
	File         string            // key/value override file
	FileExplicit bool              // File was named by the user, so it must exist
	Flags        []monthOverride
}

// buildMonthTable layers the overrides on top of the built-in labels.
func buildMonthTable(src monthSources) (months.Table, error) {
	table := months.Default()

	for _, k := range slices.Sorted(maps.Keys(src.Config)) {
		if !table.Set(k, src.Config[k]) {
			slog.Warn("ignoring unknown month in config", "key", k)
		}
	}

	if src.File != "" {
		t, err := table.LoadFile(src.File)
		switch {
		case err == nil:
			table = t
			slog.Debug("loaded month overrides", "path", src.File)
		case !src.FileExplicit && errors.Is(err, fs.ErrNotExist):
		default:
			return months.Table{}, err
		}
	}

	for _, o := range src.Flags {
		table.Set(o.key, o.label)
	}

	if err := table.Validate(); err != nil {
		return months.Table{}, err
	}
	return table, nil
}

package app

import (
	"bagrules/internal/core/errors"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const stdinPath = "-"

// ScanInputs expands the configured input paths into an ordered list of rule
// files. Directories are walked and their entries kept when the base name
// matches an include pattern; explicitly named files are always kept.
func (a *App) ScanInputs(ctx context.Context) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, p := range a.Config.Input.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == stdinPath {
			files = append(files, stdinPath)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "input not found"), errors.CtxPath, p)
			}
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to stat input"), errors.CtxPath, p)
		}

		if !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if len(a.include) > 0 && !matchesAny(a.include, d.Name()) {
				return nil
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to walk input directory"), errors.CtxPath, p)
		}
		sort.Strings(found)
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

// readInputs concatenates every scanned input, one rule set after another.
func (a *App) readInputs(ctx context.Context) (string, error) {
	files, err := a.ScanInputs(ctx)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.New(errors.CodeNotFound, "no input files matched")
	}

	var b strings.Builder
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := a.readInput(f)
		if err != nil {
			return "", err
		}
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		a.logger.Debug("input read", "path", f, "bytes", len(data))
	}
	return b.String(), nil
}

func (a *App) readInput(path string) ([]byte, error) {
	if path == stdinPath {
		if a.Stdin == nil {
			return nil, errors.New(errors.CodeNotFound, "stdin requested but not available")
		}
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "failed to read input"), errors.CtxPath, path)
	}
	return data, nil
}

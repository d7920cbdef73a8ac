package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ztrue/tracerr"
)

// ScriptExt is the extension of pup scripts.
const ScriptExt = ".pup"

// Discover lists every script below resDir in lexical order.
func Discover(resDir string) ([]string, error) {
	info, err := os.Stat(resDir)
	if err != nil {
		return nil, tracerr.Errorf("res directory not found at %s: %w", resDir, err)
	}
	if !info.IsDir() {
		return nil, tracerr.Errorf("%s is not a directory", resDir)
	}

	var files []string
	err = filepath.WalkDir(resDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(path), ScriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	sort.Strings(files)
	return files, nil
}

// writeFile replaces path through a temporary file in the same directory,
// so a failed write never leaves a partial file behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return tracerr.Wrap(err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return tracerr.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return tracerr.Wrap(err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return tracerr.Wrap(err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return tracerr.Wrap(err)
	}
	return nil
}

// listIDs returns the stems of the files in dir with extension ext, sorted.
// lib.rs is not a script. A missing dir has none.
func listIDs(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, ".") {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if ext == ".rs" && id == "lib" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

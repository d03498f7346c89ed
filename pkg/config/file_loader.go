package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type decoder func(path string, data []byte) (any, error)

var decoders = map[string]decoder{
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
}

type fileLoader struct {
	root  string
	names []string
}

// NewFileLoader loads one section per name from files under root. For a
// name such as "database" it tries database, database.json, database.yaml,
// database.yml and database.toml, and the first file found becomes the
// "database" section. Names that already carry a known extension are tried
// as given first. Missing files are skipped; unreadable or malformed files
// fail the load.
func NewFileLoader(root string, names ...string) Loader {
	return &fileLoader{root: root, names: names}
}

func (l *fileLoader) Load(ctx context.Context) (map[string]any, error) {
	base, err := filepath.Abs(l.root)
	if err != nil {
		return nil, ErrReadFile.WithDetail("path", l.root).WithCause(err)
	}
	base = filepath.Clean(base)

	config := make(map[string]any)
	for _, name := range l.names {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		section := sectionName(name)
		if _, done := config[section]; done {
			continue
		}

		for _, variant := range variants(name) {
			path := filepath.Clean(filepath.Join(base, variant))
			if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
				return nil, ErrUnsafePath.WithDetail("path", name)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) || isDir(path) {
					continue
				}
				return nil, ErrReadFile.WithDetail("path", path).WithCause(err)
			}

			value, err := decode(path, data)
			if err != nil {
				return nil, err
			}
			config[section] = value
			break
		}
	}

	return config, nil
}

func variants(name string) []string {
	ext := strings.ToLower(filepath.Ext(name))
	if _, known := decoders[ext]; known {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		out := []string{name}
		for _, other := range []string{".json", ".yaml", ".yml", ".toml"} {
			if other != ext {
				out = append(out, stem+other)
			}
		}
		return out
	}
	return []string{name, name + ".json", name + ".yaml", name + ".yml", name + ".toml"}
}

func sectionName(name string) string {
	if _, known := decoders[strings.ToLower(filepath.Ext(name))]; known {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// decode picks a format from the extension. Extensionless files are parsed
// as JSON first, then YAML.
func decode(path string, data []byte) (any, error) {
	if dec, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		return dec(path, data)
	}
	if v, err := decodeJSON(path, data); err == nil {
		return v, nil
	}
	return decodeYAML(path, data)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

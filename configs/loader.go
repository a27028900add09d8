package configs

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE config files lazily, once. Earlier files take precedence.
type Loader struct {
	getRoots func() ([]root, error)
}

type root struct {
	value cue.Value
	file  string
}

// NewLoader validates every file against schemaSrc, a list of CUE fields that
// is closed so unknown keys are rejected. An empty schema accepts anything.
func NewLoader(files []string, schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() ([]root, error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("config schema: %w", err)
				}
			}

			ret := make([]root, 0, len(files))
			for _, file := range files {
				content, err := os.ReadFile(file)
				if err != nil {
					return nil, err
				}
				value := ctx.CompileBytes(content, cue.Filename(file))
				if err := value.Err(); err != nil {
					return nil, fmt.Errorf("config %s: %w", file, err)
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("config %s: %w", file, err)
					}
				}
				ret = append(ret, root{
					value: value,
					file:  file,
				})
			}
			return ret, nil
		}),
	}
}

// Lookup finds the first file defining path.
func (l Loader) Lookup(path string) (value cue.Value, file string, err error) {
	roots, err := l.getRoots()
	if err != nil {
		return value, "", err
	}
	cuePath := cue.ParsePath(path)
	for _, root := range roots {
		value := root.value.LookupPath(cuePath)
		if value.Exists() && value.Err() == nil {
			return value, root.file, nil
		}
	}
	return value, "", fmt.Errorf("%w: %s", ErrValueNotFound, path)
}

func (l Loader) AssignFirst(path string, target any) error {
	value, file, err := l.Lookup(path)
	if err != nil {
		return err
	}
	if err := value.Decode(target); err != nil {
		return fmt.Errorf("config %s: %s: %w", file, path, err)
	}
	return nil
}

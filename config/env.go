package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env resolves ${NAME} references in service values.
type Env struct {
	values map[string]string
}

// NewEnv reads the given dotenv files. Values from later files win; names
// missing from every file fall back to the process environment. Missing
// files are an error.
func NewEnv(files ...string) (*Env, error) {
	values := make(map[string]string)

	for _, file := range files {
		read, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", file, err)
		}
		for k, v := range read {
			values[k] = v
		}
	}

	return &Env{values: values}, nil
}

// Lookup returns the value of name.
func (e *Env) Lookup(name string) (string, bool) {
	if e != nil {
		if v, ok := e.values[name]; ok {
			return v, true
		}
	}
	return os.LookupEnv(name)
}

// Expand substitutes ${NAME} and $NAME in s. Unknown names expand to "".
func (e *Env) Expand(s string) string {
	return os.Expand(s, func(name string) string {
		v, _ := e.Lookup(name)
		return v
	})
}

// ExpandValue expands every string inside v, descending into maps and slices.
func (e *Env) ExpandValue(v any) any {
	switch val := v.(type) {
	case string:
		return e.Expand(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = e.ExpandValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = e.ExpandValue(item)
		}
		return out
	default:
		return v
	}
}

// ExpandServices expands the service values of f in place.
func (e *Env) ExpandServices(f *File) {
	for id, value := range f.Services {
		f.Services[id] = e.ExpandValue(value)
	}
}

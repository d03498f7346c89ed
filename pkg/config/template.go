package config

import (
	"bytes"
	"context"
	"os"
	"strings"
	"text/template"
)

type templatedLoader struct {
	loader Loader
}

// NewTemplatedLoader renders string values containing {{ }} as Go
// templates over the process environment, e.g. "{{.DB_HOST}}" or
// `{{ env "PORT" | default "8080" }}`.
func NewTemplatedLoader(loader Loader) Loader {
	return &templatedLoader{
		loader: loader,
	}
}

func (t *templatedLoader) Load(ctx context.Context) (map[string]any, error) {
	raw, err := t.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	data := environ()
	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		if processed[k], err = t.processValue(v, data); err != nil {
			return nil, err
		}
	}
	return processed, nil
}

func (t *templatedLoader) processValue(v any, data map[string]string) (any, error) {
	switch val := v.(type) {
	case string:
		if strings.Contains(val, "{{") && strings.Contains(val, "}}") {
			return t.render(val, data)
		}
		return val, nil
	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			out, err := t.processValue(item, data)
			if err != nil {
				return nil, err
			}
			mapped[k] = out
		}
		return mapped, nil
	case []any:
		result := make([]any, 0, len(val))
		for _, item := range val {
			out, err := t.processValue(item, data)
			if err != nil {
				return nil, err
			}
			result = append(result, out)
		}
		return result, nil
	default:
		return val, nil
	}
}

func (t *templatedLoader) newFuncMap() template.FuncMap {
	return template.FuncMap{
		"default": func(def, val any) string {
			s, ok := val.(string)
			if !ok || s == "" {
				if s, ok := def.(string); ok {
					return s
				}
				return ""
			}
			return s
		},
		"env":   os.Getenv,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

func (t *templatedLoader) render(input string, data map[string]string) (string, error) {
	tmpl, err := template.New("config").Funcs(t.newFuncMap()).Option("missingkey=zero").Parse(input)
	if err != nil {
		return "", ErrTemplateRender.WithDetail("value", input).WithCause(err)
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return "", ErrTemplateRender.WithDetail("value", input).WithCause(err)
	}

	return buf.String(), nil
}

func environ() map[string]string {
	data := make(map[string]string)
	for _, env := range os.Environ() {
		if k, v, ok := strings.Cut(env, "="); ok {
			data[k] = v
		}
	}
	return data
}

package commands

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pixil98/go-adventure/internal/game"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// RuntimeContext is what command config templates are expanded against.
type RuntimeContext struct {
	Player string
	Room   string
	Turn   int
	Phase  string
	Inputs map[string]any // Parsed input values keyed by input name
}

func newRuntimeContext(g *game.GameState, inputs map[string]any) *RuntimeContext {
	rc := &RuntimeContext{Inputs: inputs}
	if g != nil {
		rc.Player = g.Player().Name()
		rc.Room = g.CurrentRoom().Name()
		rc.Turn = g.Turn()
		rc.Phase = g.Phase().String()
	}
	return rc
}

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	tmpl, err := template.New("").Funcs(templateFuncs).Option("missingkey=zero").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// expandConfig expands every string value in config.
// Non-string values are formatted with %v.
func expandConfig(config map[string]any, ctx *RuntimeContext) (map[string]string, error) {
	out := make(map[string]string, len(config))
	for k, v := range config {
		s, ok := v.(string)
		if !ok {
			out[k] = fmt.Sprintf("%v", v)
			continue
		}

		expanded, err := ExpandTemplate(s, ctx)
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", k, err)
		}
		out[k] = expanded
	}
	return out, nil
}

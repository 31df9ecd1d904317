// Package prompt provides a template registry for the generation
// pipeline. Templates carry a system role and a user body with
// {placeholder} slots; rendering fails loudly on unresolved slots so a
// typo in a variable name never reaches the model as literal braces.
package prompt

import (
	"fmt"
	"regexp"
	"sync"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

type Template struct {
	System string
	User   string
}

type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]Template),
	}
}

func (r *Registry) Register(id string, tpl Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[id] = tpl
}

// Render interpolates vars into the template's system and user bodies.
// Every placeholder must resolve; the first unresolved one aborts the
// render.
func (r *Registry) Render(id string, vars map[string]string) (string, string, error) {
	r.mu.RLock()
	tpl, ok := r.templates[id]
	r.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("unknown prompt template %q", id)
	}

	system, err := interpolate(id, tpl.System, vars)
	if err != nil {
		return "", "", err
	}
	user, err := interpolate(id, tpl.User, vars)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func interpolate(id, body string, vars map[string]string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})
	if missing != "" {
		return "", &apperrors.MissingVariableError{Template: id, Variable: missing}
	}
	return out, nil
}

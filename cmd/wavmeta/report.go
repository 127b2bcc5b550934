package main

import (
	"time"

	"github.com/simonhull/wavmeta"
)

// report is the JSON document written for one file.
type report struct {
	Filename    string                    `json:"filename"`
	RunDate     string                    `json:"run_date"`
	Application string                    `json:"application"`
	Scopes      map[string]map[string]any `json:"scopes"`
	Warnings    []string                  `json:"warnings,omitempty"`
}

// newReport groups walked fields by scope.
func newReport(path string, now time.Time, fields []wavmeta.Field, warnings []wavmeta.Warning) *report {
	r := &report{
		Filename:    path,
		RunDate:     now.Format(time.RFC3339),
		Application: wavmeta.Application(),
		Scopes:      make(map[string]map[string]any),
	}
	for _, f := range fields {
		scope, ok := r.Scopes[f.Scope]
		if !ok {
			scope = make(map[string]any)
			r.Scopes[f.Scope] = scope
		}
		scope[f.Name] = f.Value
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/refined"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type issueView struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Value   any    `json:"value,omitempty"`
	Offset  *int64 `json:"offset,omitempty"`
}

// result is one line of check/decode output.
type result struct {
	Type   string      `json:"type"`
	Input  string      `json:"input"`
	Valid  bool        `json:"valid"`
	Output string      `json:"output,omitempty"`
	Issues []issueView `json:"issues,omitempty"`
}

func failed(typeName string, err error) result {
	r := result{Type: typeName}
	df, ok := refined.AsDecodeFailure(err)
	if !ok {
		r.Issues = []issueView{{Path: "/", Code: refined.CodeParseError, Message: err.Error()}}
		return r
	}
	r.Input = df.Input
	for _, it := range df.Issues() {
		v := issueView{Path: it.Path, Code: it.Code, Message: it.Message, Rule: it.Rule, Value: it.Value}
		if it.Offset >= 0 {
			off := it.Offset
			v.Offset = &off
		}
		r.Issues = append(r.Issues, v)
	}
	return r
}

func (a *app) writeJSON(v any) error {
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func (a *app) writeDocument(format string, v any) error {
	switch format {
	case formatJSON:
		b, err := j.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(b))
		return err
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = a.out.Write(b)
		return err
	}
	return &exitError{code: exitUsage, err: fmt.Errorf("unknown format %q (want json or yaml)", format)}
}

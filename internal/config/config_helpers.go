package config

import (
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/flarebyte/myapp/internal/calc"
)

func parseCUE(data []byte) (document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return document{}, fmt.Errorf("invalid config: %v", err)
	}

	var doc document
	cv := v.LookupPath(cue.ParsePath("configVersion"))
	if !cv.Exists() {
		return document{}, missingField("configVersion")
	}
	if cv.Kind() != cue.StringKind {
		return document{}, invalidType("configVersion", "string")
	}
	if err := cv.Decode(&doc.ConfigVersion); err != nil {
		return document{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}

	gv := v.LookupPath(cue.ParsePath("greeting"))
	if gv.Exists() {
		if gv.Kind() != cue.StringKind {
			return document{}, invalidType("greeting", "string")
		}
		var g string
		if err := gv.Decode(&g); err != nil {
			return document{}, fmt.Errorf("invalid value for greeting: %v", err)
		}
		doc.Greeting = &g
	}

	var err error
	if doc.SampleA, err = cueOperand(v, "sample.a"); err != nil {
		return document{}, err
	}
	if doc.SampleB, err = cueOperand(v, "sample.b"); err != nil {
		return document{}, err
	}
	return doc, nil
}

func cueOperand(v cue.Value, path string) (*calc.Operand, error) {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() {
		return nil, nil
	}
	switch f.Kind() {
	case cue.IntKind:
		i, err := f.Int64()
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %v", path, err)
		}
		return &calc.Operand{Int: i}, nil
	case cue.FloatKind:
		x, err := f.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %v", path, err)
		}
		return &calc.Operand{Float: x, IsFloat: true}, nil
	default:
		return nil, invalidType(path, "number")
	}
}

type yamlDoc struct {
	ConfigVersion any `yaml:"configVersion"`
	Greeting      any `yaml:"greeting"`
	Sample        struct {
		A any `yaml:"a"`
		B any `yaml:"b"`
	} `yaml:"sample"`
}

func parseYAML(data []byte) (document, error) {
	var raw yamlDoc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return document{}, fmt.Errorf("invalid config: %v", err)
	}

	var doc document
	switch cv := raw.ConfigVersion.(type) {
	case nil:
		return document{}, missingField("configVersion")
	case string:
		doc.ConfigVersion = cv
	default:
		return document{}, invalidType("configVersion", "string")
	}

	if raw.Greeting != nil {
		g, ok := raw.Greeting.(string)
		if !ok {
			return document{}, invalidType("greeting", "string")
		}
		doc.Greeting = &g
	}

	var err error
	if doc.SampleA, err = yamlOperand(raw.Sample.A, "sample.a"); err != nil {
		return document{}, err
	}
	if doc.SampleB, err = yamlOperand(raw.Sample.B, "sample.b"); err != nil {
		return document{}, err
	}
	return doc, nil
}

func yamlOperand(v any, path string) (*calc.Operand, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &calc.Operand{Int: int64(x)}, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("invalid value for %s: %v (not finite)", path, x)
		}
		return &calc.Operand{Float: x, IsFloat: true}, nil
	default:
		return nil, invalidType(path, "number")
	}
}

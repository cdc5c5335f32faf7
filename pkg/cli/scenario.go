package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/config"
	"github.com/funvibe/dyncall/internal/object"
)

// Scenario is a batch of callee definitions plus calls to run against them.
type Scenario struct {
	Callees []CalleeSpec `yaml:"callees"`
	Calls   []CallSpec   `yaml:"calls"`
}

type CalleeSpec struct {
	Name           string        `yaml:"name"`
	Params         []string      `yaml:"params"`
	Defaults       []interface{} `yaml:"defaults"` // aligned to the trailing params
	RestPositional bool          `yaml:"restPositional"`
	RestKeyword    bool          `yaml:"restKeyword"`
}

type CallSpec struct {
	Callee     string         `yaml:"callee"`
	Positional []interface{}  `yaml:"positional"`
	Named      yaml.Node      `yaml:"named"` // yaml.Node keeps call-site keyword order
	Splat      *[]interface{} `yaml:"splat"` // pointer distinguishes absent from empty
	SplatMap   yaml.Node      `yaml:"splatMap"`
	Repeat     int            `yaml:"repeat"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	if !isScenarioFile(path) {
		return nil, fmt.Errorf("%s: not a scenario file (want %s)", path, strings.Join(config.ScenarioFileExtensions, " or "))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return &sc, nil
}

func isScenarioFile(path string) bool {
	for _, ext := range config.ScenarioFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// inferValue converts a decoded YAML value into an engine object.
// yaml.v3 yields int for integers, not float64 like encoding/json.
func inferValue(data interface{}) (object.Object, error) {
	switch v := data.(type) {
	case nil:
		return &object.Nil{}, nil
	case bool:
		return &object.Boolean{Value: v}, nil
	case int:
		return &object.Integer{Value: int64(v)}, nil
	case int64:
		return &object.Integer{Value: v}, nil
	case float64:
		if v == float64(int64(v)) {
			return &object.Integer{Value: int64(v)}, nil
		}
		return &object.Float{Value: v}, nil
	case string:
		return &object.String{Value: v}, nil
	case []interface{}:
		elements := make([]object.Object, len(v))
		for i, item := range v {
			obj, err := inferValue(item)
			if err != nil {
				return nil, err
			}
			elements[i] = obj
		}
		return object.NewList(elements), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := object.NewMap()
		for _, k := range keys {
			obj, err := inferValue(v[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, obj)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported scenario value %T", data)
	}
}

func inferValues(data []interface{}) ([]object.Object, error) {
	out := make([]object.Object, len(data))
	for i, item := range data {
		obj, err := inferValue(item)
		if err != nil {
			return nil, err
		}
		out[i] = obj
	}
	return out, nil
}

// decodeOrderedMap walks a YAML mapping node directly so key order survives
// (plain map decoding would lose it).
func decodeOrderedMap(node *yaml.Node, visit func(key string, value object.Object) error) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got yaml kind %d", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var raw interface{}
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return err
		}
		val, err := inferValue(raw)
		if err != nil {
			return err
		}
		if err := visit(key, val); err != nil {
			return err
		}
	}
	return nil
}

// BuildCall converts the spec into an engine call.
func (cs *CallSpec) BuildCall() (*binding.Call, error) {
	call := &binding.Call{}

	positional, err := inferValues(cs.Positional)
	if err != nil {
		return nil, err
	}
	call.Positional = positional

	err = decodeOrderedMap(&cs.Named, func(key string, value object.Object) error {
		call.Named = append(call.Named, binding.NamedArg{Name: key, Value: value})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cs.Splat != nil {
		elements, err := inferValues(*cs.Splat)
		if err != nil {
			return nil, err
		}
		call.SplatSequence = object.NewList(elements)
	}

	if cs.SplatMap.Kind != 0 {
		m := object.NewMap()
		err = decodeOrderedMap(&cs.SplatMap, func(key string, value object.Object) error {
			m.Set(key, value)
			return nil
		})
		if err != nil {
			return nil, err
		}
		call.SplatMapping = m
	}

	return call, nil
}

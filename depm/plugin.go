package depm

import (
	"errors"
	"fmt"
	"nakofront/common"
	"nakofront/report"

	"gopkg.in/yaml.v3"
)

// commandEntry is a single entry of a plugin command table as it is encoded in
// YAML.  Fields that only matter at runtime (`fn`, `value`) are ignored.
type commandEntry struct {
	Type           string     `yaml:"type"`
	Josi           [][]string `yaml:"josi"`
	Args           []string   `yaml:"args"`
	Pure           bool       `yaml:"pure"`
	AsyncFn        bool       `yaml:"asyncFn"`
	IsVariableJosi bool       `yaml:"isVariableJosi"`
	Desc           string     `yaml:"desc"`
	Hint           string     `yaml:"hint"`
}

// metaEntryName is the name of the entry describing the plugin itself.
const metaEntryName = "meta"

// defaultArgNames are the parameter names used when a command table does not
// name the parameters of a function.
var defaultArgNames = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// ParseCommandTable converts the text of a plugin command table into declared
// things.  The table is a mapping of command names to entries; both the verbose
// one-entry-per-line form and the minified single-line form are accepted.  The
// things are returned in the order they appear in the table.
func ParseCommandTable(pluginName, text string) ([]*DeclaredThing, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", pluginName, err)
	}

	// an empty table declares nothing
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("plugin %s: line %d: command table must be a mapping", pluginName, root.Line)
	}

	origin := OriginPlugin
	if pluginName == common.SystemPluginName {
		origin = OriginSystem
	}

	var things []*DeclaredThing
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		name := keyNode.Value
		if name == metaEntryName {
			continue
		}

		dt, err := decodeCommandEntry(pluginName, name, keyNode, valueNode)
		if err != nil {
			return nil, err
		}

		dt.Origin = origin
		things = append(things, dt)
	}

	return things, nil
}

// decodeCommandEntry decodes a single command table entry.
func decodeCommandEntry(pluginName, name string, keyNode, valueNode *yaml.Node) (*DeclaredThing, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin %s: line %d: empty command name", pluginName, keyNode.Line)
	}

	if valueNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("plugin %s: line %d: entry `%s` must be a mapping", pluginName, valueNode.Line, name)
	}

	entry := &commandEntry{}
	if err := valueNode.Decode(entry); err != nil {
		return nil, fmt.Errorf("plugin %s: line %d: entry `%s`: %w", pluginName, valueNode.Line, name, err)
	}

	dt := NewDeclaredThing(ThingFunc, name, common.TrimOkurigana(name), pluginName, OriginPlugin)
	dt.Plugin = pluginName
	dt.IsExport = true
	dt.Span = report.NewSpan(keyNode.Line-1, keyNode.Column-1, keyNode.Line-1, keyNode.Column-1+len([]rune(name)))

	dt.Hint = entry.Hint
	if dt.Hint == "" {
		dt.Hint = entry.Desc
	}

	switch entry.Type {
	case "func":
		if len(entry.Josi) > len(defaultArgNames) && len(entry.Args) < len(entry.Josi) {
			return nil, fmt.Errorf("plugin %s: line %d: entry `%s` has too many unnamed parameters", pluginName, valueNode.Line, name)
		}

		for n, josi := range entry.Josi {
			argName := defaultArgNames[n%len(defaultArgNames)]
			if n < len(entry.Args) {
				argName = entry.Args[n]
			}

			dt.Args = append(dt.Args, FuncArg{Name: argName, Josi: josi})
		}

		dt.IsPure = entry.Pure
		dt.IsAsync = entry.AsyncFn
		dt.IsVariableJosi = entry.IsVariableJosi
	case "var":
		dt.Kind = ThingVar
	case "const":
		dt.Kind = ThingConst
	case "":
		return nil, fmt.Errorf("plugin %s: line %d: entry `%s` is missing its type", pluginName, valueNode.Line, name)
	default:
		return nil, fmt.Errorf("plugin %s: line %d: entry `%s` has unknown type `%s`", pluginName, valueNode.Line, name, entry.Type)
	}

	return dt, nil
}

// ErrUnknownPlugin is returned when enabling a plugin the universe does not
// contain.
var ErrUnknownPlugin = errors.New("unknown plugin")

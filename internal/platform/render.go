package platform

import (
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/pkg/frontmatter"
)

type agentHeader struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type cascadeRuleHeader struct {
	Trigger     string `yaml:"trigger"`
	Description string `yaml:"description"`
}

type subagentHeader struct {
	Description string `yaml:"description"`
	Mode        string `yaml:"mode"`
}

// Render returns the file content for def in dialect d.
// DialectSection yields a delimited section block.
func Render(d Dialect, def *catalog.AgentDefinition) ([]byte, error) {
	var header any
	switch d {
	case DialectAgent:
		header = agentHeader{Name: def.ID, Description: def.Description}
	case DialectCascadeRule:
		header = cascadeRuleHeader{Trigger: "model_decision", Description: def.Description}
	case DialectSubagent:
		header = subagentHeader{Description: def.Description, Mode: "subagent"}
	case DialectSection:
		if containsMarker(def.Body) {
			return nil, errors.Configurationf("agent %s: body contains a section marker line", def.ID)
		}
		return []byte(renderSection(def)), nil
	default:
		return nil, errors.Newf("unknown dialect %d", d)
	}

	out, err := frontmatter.Format(header, def.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", def.ID)
	}
	return out, nil
}

func beginMarker(id string) string {
	return "<!-- blue-gardener:begin " + id + " -->"
}

func endMarker(id string) string {
	return "<!-- blue-gardener:end " + id + " -->"
}

func containsMarker(body string) bool {
	for line := range strings.SplitSeq(body, "\n") {
		if _, ok := parseMarker(line, beginPrefix); ok {
			return true
		}
		if _, ok := parseMarker(line, endPrefix); ok {
			return true
		}
	}
	return false
}

// renderSection builds the delimited block for def, ending in a newline.
func renderSection(def *catalog.AgentDefinition) string {
	var sb strings.Builder
	sb.WriteString(beginMarker(def.ID))
	sb.WriteString("\n## ")
	sb.WriteString(def.DisplayName())
	sb.WriteString("\n\n")
	if def.Body != "" {
		sb.WriteString(def.Body)
		sb.WriteString("\n\n")
	}
	sb.WriteString("---\n")
	sb.WriteString(endMarker(def.ID))
	sb.WriteString("\n")
	return sb.String()
}

package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names in display order.
const (
	CategoryOrchestrator   = "orchestrator"
	CategoryDevelopment    = "development"
	CategoryQuality        = "quality"
	CategoryInfrastructure = "infrastructure"
	CategoryConfiguration  = "configuration"
	CategoryBlockchain     = "blockchain"
)

var categoryOrder = []string{
	CategoryOrchestrator,
	CategoryDevelopment,
	CategoryQuality,
	CategoryInfrastructure,
	CategoryConfiguration,
	CategoryBlockchain,
}

// idPattern is the agent naming convention: "blue-" followed by kebab-case.
var idPattern = regexp.MustCompile(`^blue-[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidID reports whether id follows the agent naming convention.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// ValidCategory reports whether name is a known category.
func ValidCategory(name string) bool {
	return categoryIndex(name) >= 0
}

// AllCategories returns every known category in display order.
func AllCategories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func categoryIndex(name string) int {
	for i, c := range categoryOrder {
		if c == name {
			return i
		}
	}
	return -1
}

// AgentDefinition is one agent persona from the catalog.
type AgentDefinition struct {
	// ID is the unique, stable identifier. It matches the file stem.
	ID string `json:"id" yaml:"id" toml:"id"`

	// Description is the one-line summary shown in listings and pickers.
	Description string `json:"description" yaml:"description" toml:"description"`

	// Category is the directory the agent lives in.
	Category string `json:"category" yaml:"category" toml:"category"`

	// Tags are free-form search terms.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`

	// Version is the agent's own version, or the catalog version when the
	// frontmatter does not declare one.
	Version string `json:"version" yaml:"version" toml:"version"`

	// Title overrides the display name derived from ID.
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`

	// Body is the prompt text with surrounding whitespace trimmed.
	Body string `json:"-" yaml:"-" toml:"-"`

	// Path is the file location inside the catalog tree.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// DisplayName returns Title when set, otherwise ID title-cased word by word:
// "blue-react-developer" becomes "Blue React Developer".
func (a *AgentDefinition) DisplayName() string {
	if a.Title != "" {
		return a.Title
	}
	words := strings.ReplaceAll(a.ID, "-", " ")
	return cases.Title(language.English).String(words)
}

// header is the frontmatter shape of a catalog file.
type header struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Version     string   `yaml:"version"`
	Title       string   `yaml:"title"`
}

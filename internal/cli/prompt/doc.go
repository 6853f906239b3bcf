// Package prompt provides interactive CLI prompts: a numbered selector,
// a yes/no confirmation and a fuzzy agent picker.
package prompt

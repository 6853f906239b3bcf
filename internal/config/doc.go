// Package config loads blue-gardener's configuration with viper.
//
// The config file is config.yaml, searched in the current directory and then
// in the XDG config directory (see paths.ConfigDir). Every key can also be
// set through the environment with the BLUE_GARDENER_ prefix, for example
// BLUE_GARDENER_PLATFORM=cursor.
//
// Example config.yaml:
//
//	version: 1
//	platform: cursor
//	catalog_dir: ~/src/blue-gardener/agents/catalog
//	interactive: true
//
// All keys are optional. An absent file is not an error; an explicitly named
// file that does not exist is.
package config

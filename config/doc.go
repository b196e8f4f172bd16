// Package config loads the YAML manifest that drives the embedasm command.
package config

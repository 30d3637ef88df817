// Package config defines the bootstrap's configuration model.
//
// Two kinds of values live here. [Config] is the optional, operator-edited
// YAML file (djazure.yaml) holding defaults, tool locations, and the
// personalization file list. [BootstrapParameters] is the validated operator
// input for a single run, produced once by the input collector and passed by
// value to every later step.
package config

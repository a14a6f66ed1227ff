package runconfig

import (
	"fmt"
	"sort"

	"github.com/edirooss/runcc/internal/cmdbuild"
)

// parseCommandsInput resolves the "commands" field of a config
// document into an ordered list of Descriptors. It accepts either a
// list (each entry a script string, an argv-style list, or a command
// object) or a label-keyed mapping, matching the original's
// CommandConfigsInput::{Commands, LabeledCommands} union.
func parseCommandsInput(v any) ([]cmdbuild.Descriptor, error) {
	switch t := v.(type) {
	case []any:
		out := make([]cmdbuild.Descriptor, 0, len(t))
		for i, item := range t {
			d, err := parseCommandInput(item)
			if err != nil {
				return nil, fmt.Errorf("commands[%d]: %w", i, err)
			}
			out = append(out, d)
		}
		return out, nil

	case map[string]any:
		return parseLabeledCommands(t)
	case map[any]any:
		converted := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, ErrInvalidCommandShape
			}
			converted[ks] = val
		}
		return parseLabeledCommands(converted)

	default:
		return nil, ErrMissingCommands
	}
}

// parseLabeledCommands iterates a label-keyed commands map. Go map
// iteration order is random, so keys are sorted for deterministic
// fleet-member ordering across runs; the original's HashMap-backed
// equivalent has no defined order either.
func parseLabeledCommands(m map[string]any) ([]cmdbuild.Descriptor, error) {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]cmdbuild.Descriptor, 0, len(labels))
	for _, label := range labels {
		value := m[label]
		if value == nil {
			out = append(out, cmdbuild.FromProgramArgs([]string{label}))
			continue
		}
		d, err := parseCommandInput(value)
		if err != nil {
			return nil, fmt.Errorf("commands[%q]: %w", label, err)
		}
		d.Label = label
		out = append(out, d)
	}
	return out, nil
}

// parseCommandInput resolves a single "commands" list entry: a raw
// script string, an argv-style list of strings, or a fully specified
// command object ({program, args, label, envs, cwd}).
func parseCommandInput(v any) (cmdbuild.Descriptor, error) {
	switch t := v.(type) {
	case string:
		return cmdbuild.FromScript(t), nil

	case []any:
		names, ok := asStringSlice(t)
		if !ok {
			return cmdbuild.Descriptor{}, ErrInvalidCommandShape
		}
		if len(names) == 0 {
			return cmdbuild.Descriptor{}, ErrEmptyCommand
		}
		return cmdbuild.FromProgramArgs(names), nil

	case map[string]any:
		return parseCommandObject(t)
	case map[any]any:
		converted := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return cmdbuild.Descriptor{}, ErrInvalidCommandShape
			}
			converted[ks] = val
		}
		return parseCommandObject(converted)

	default:
		return cmdbuild.Descriptor{}, ErrInvalidCommandShape
	}
}

func parseCommandObject(m map[string]any) (cmdbuild.Descriptor, error) {
	program, ok := m["program"].(string)
	if !ok || program == "" {
		return cmdbuild.Descriptor{}, ErrEmptyCommand
	}

	d := cmdbuild.Descriptor{Program: program}

	if argsV, present := m["args"]; present && argsV != nil {
		args, ok := asStringSlice(argsV)
		if !ok {
			return cmdbuild.Descriptor{}, fmt.Errorf("%w: \"args\" must be a list of strings", ErrInvalidCommandShape)
		}
		d.Args = args
	}
	if labelV, present := m["label"]; present && labelV != nil {
		label, ok := labelV.(string)
		if !ok {
			return cmdbuild.Descriptor{}, fmt.Errorf("%w: \"label\" must be a string", ErrInvalidCommandShape)
		}
		d.Label = label
	}
	if envsV, present := m["envs"]; present && envsV != nil {
		pairs, ok := asEnvPairs(envsV)
		if !ok {
			return cmdbuild.Descriptor{}, fmt.Errorf("%w: \"envs\" must be a mapping or list of pairs", ErrInvalidCommandShape)
		}
		d.Envs = make([]cmdbuild.EnvPair, len(pairs))
		for i, p := range pairs {
			d.Envs[i] = cmdbuild.EnvPair{Name: p.Name, Value: p.Value}
		}
	}
	if cwdV, present := m["cwd"]; present && cwdV != nil {
		cwd, ok := cwdV.(string)
		if !ok {
			return cmdbuild.Descriptor{}, fmt.Errorf("%w: \"cwd\" must be a string", ErrInvalidCommandShape)
		}
		d.Cwd = cwd
	}

	return d, nil
}

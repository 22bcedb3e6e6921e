// Package scenario replays scripted monitoring sessions against a Monitor.
//
// A scenario is a YAML document with an optional start instant and a list of
// steps. Each step names an action; its remaining keys are decoded strictly
// into the typed arguments of that action, so a misspelled field fails at
// parse time rather than being silently ignored.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Action names.
const (
	ActionRegisterAgent    = "register_agent"
	ActionRegisterWorkflow = "register_workflow"
	ActionWorkflowStatus   = "workflow_status"
	ActionPhaseStatus      = "phase_status"
	ActionAgentStatus      = "agent_status"
	ActionAlert            = "alert"
	ActionAdvance          = "advance"
	ActionScan             = "scan"
)

// Step is one scripted action. Args holds every key besides "action".
type Step struct {
	Action string         `yaml:"action"`
	Args   map[string]any `yaml:",inline"`
}

// Scenario is a parsed, validated script.
type Scenario struct {
	Name  string    `yaml:"name"`
	Start time.Time `yaml:"start"`
	Steps []Step    `yaml:"steps"`

	commands []command
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario and validates every step.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	s.commands = make([]command, 0, len(s.Steps))
	for i, step := range s.Steps {
		cmd, err := compile(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		s.commands = append(s.commands, cmd)
	}
	return &s, nil
}

func compile(step Step) (command, error) {
	var cmd command
	switch step.Action {
	case ActionRegisterAgent:
		cmd = &registerAgent{}
	case ActionRegisterWorkflow:
		cmd = &registerWorkflow{}
	case ActionWorkflowStatus:
		cmd = &workflowStatus{}
	case ActionPhaseStatus:
		cmd = &phaseStatus{}
	case ActionAgentStatus:
		cmd = &agentStatus{}
	case ActionAlert:
		cmd = &alert{}
	case ActionAdvance:
		cmd = &advance{}
	case ActionScan:
		cmd = &scan{}
	case "":
		return nil, fmt.Errorf("missing action")
	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}

	if err := decode(step.Args, cmd); err != nil {
		return nil, err
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

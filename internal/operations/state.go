package operations

import (
	"github.com/google/uuid"

	"creditcli/pkg/contracts/domain"
)

// State carries one document through the pipeline. Each operation owns its
// own State; nothing is shared across documents.
type State struct {
	// ID uniquely identifies this operation and names its artifact
	// directory.
	ID string

	// DocumentPath is the source document on disk.
	DocumentPath string

	// OutputDir receives the generated artifacts.
	OutputDir string

	// Document is set by the decode step.
	Document *domain.Document

	// Report is set by the parse step.
	Report *domain.CreditReport

	// Artifacts maps artifact kind ("json", "xlsx") to file path, set by
	// the export step.
	Artifacts map[string]string

	// Steps tracks per-step runtime state keyed by step ID.
	Steps map[string]*StepState
}

// NewState creates the state for one document operation.
func NewState(documentPath, outputDir string) *State {
	return &State{
		ID:           uuid.New().String(),
		DocumentPath: documentPath,
		OutputDir:    outputDir,
		Artifacts:    map[string]string{},
		Steps:        map[string]*StepState{},
	}
}

// StepState returns the runtime state for a step, creating it on first use.
func (s *State) StepState(id, name string) *StepState {
	if state, ok := s.Steps[id]; ok {
		return state
	}
	state := NewStepState(id, name)
	s.Steps[id] = state
	return state
}

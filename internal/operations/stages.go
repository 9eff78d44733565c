package operations

import (
	"context"
	"fmt"

	"creditcli/internal/exporter"
	"creditcli/internal/parsing"
	"creditcli/internal/pdfdoc"
)

// DecodeStep extracts the text and word layers from the source document.
// A decode failure is fatal for the document; there is nothing to parse.
type DecodeStep struct{}

func (s *DecodeStep) ID() string   { return StepIDDecode }
func (s *DecodeStep) Name() string { return "Document Decode" }

func (s *DecodeStep) Execute(ctx context.Context, state *State) error {
	doc, err := pdfdoc.Extract(state.DocumentPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", state.DocumentPath, err)
	}
	state.Document = doc
	return nil
}

// ParseStep runs the recovery engine over the decoded document.
type ParseStep struct {
	Parser *parsing.Parser
}

func (s *ParseStep) ID() string   { return StepIDParse }
func (s *ParseStep) Name() string { return "Report Recovery" }

func (s *ParseStep) Execute(ctx context.Context, state *State) error {
	if state.Document == nil {
		return fmt.Errorf("parse step requires a decoded document")
	}
	state.Report = s.Parser.Parse(state.Document)
	return nil
}

// ExportStep writes the JSON and workbook artifacts.
type ExportStep struct {
	JSON     *exporter.JSONWriter
	Workbook *exporter.WorkbookWriter
}

func (s *ExportStep) ID() string   { return StepIDExport }
func (s *ExportStep) Name() string { return "Artifact Export" }

func (s *ExportStep) Execute(ctx context.Context, state *State) error {
	if state.Report == nil {
		return fmt.Errorf("export step requires a parsed report")
	}

	jsonPath, err := s.JSON.Write(state.Report, state.OutputDir)
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	state.Artifacts["json"] = jsonPath

	xlsxPath, err := s.Workbook.Write(state.Report, state.OutputDir)
	if err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	state.Artifacts["xlsx"] = xlsxPath
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the fixed plan → research → write → export sequence
// for one paper. Implements: prd004-pipeline.
//
// The sequence is deliberately an ordered list of stage functions over a
// single mutable State, not a graph: there is no branching or conditional
// tool selection. Each stage must finish before the next begins, and the
// first failing stage aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-engine/internal/research"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// Researcher runs the research stage. *research.Runner is the production
// implementation.
type Researcher interface {
	Research(ctx context.Context, topic string) (research.Output, error)
}

// Writer runs the writing stage. *generate.Generator is the production
// implementation.
type Writer interface {
	Generate(ctx context.Context, topic, research string) (string, error)
}

// Exporter writes the paper to documents. *export.Exporter is the
// production implementation.
type Exporter interface {
	Docx(content, topic string) (string, error)
	PDF(content, topic string) (string, error)
}

// State is the single mutable record threaded through all stages of one
// invocation. It is never shared across runs. On failure the state
// accumulated so far stays inspectable for diagnostics.
type State struct {
	Topic           string
	Conversation    []types.Message
	ResearchResults string
	Sources         []types.SearchResult
	PaperContent    string
	OutputPaths     []string
	Exports         []types.ExportResult
}

func (s *State) appendMessage(role types.Role, content string) {
	s.Conversation = append(s.Conversation, types.Message{Role: role, Content: content})
}

// stage is one step of the fixed sequence.
type stage struct {
	name string
	run  func(ctx context.Context, s *State) error
}

// Pipeline wires the three adapters into the fixed stage sequence.
type Pipeline struct {
	researcher Researcher
	writer     Writer
	exporter   Exporter
	progress   io.Writer
}

// New returns a Pipeline. Progress lines are written to progress; pass nil
// to discard them.
func New(researcher Researcher, writer Writer, exporter Exporter, progress io.Writer) *Pipeline {
	if progress == nil {
		progress = io.Discard
	}
	return &Pipeline{
		researcher: researcher,
		writer:     writer,
		exporter:   exporter,
		progress:   progress,
	}
}

// StageNames returns the ordered stage names. The diagram renderer and the
// CLI use it; the order is the execution order.
func StageNames() []string {
	return []string{"plan", "research", "write", "export"}
}

// Run executes the stages in order for one topic. On error the returned
// state holds everything written before the failure, and the error names
// the failing stage.
func (p *Pipeline) Run(ctx context.Context, topic string) (*State, error) {
	s := &State{}
	for _, st := range p.stages(topic) {
		if err := st.run(ctx, s); err != nil {
			return s, fmt.Errorf("stage %s: %w", st.name, err)
		}
	}
	return s, nil
}

func (p *Pipeline) stages(topic string) []stage {
	return []stage{
		{"plan", func(_ context.Context, s *State) error {
			t := strings.TrimSpace(topic)
			if t == "" {
				return fmt.Errorf("topic is empty: provide a research topic")
			}
			s.Topic = t
			s.appendMessage(types.RoleUser, "Research topic: "+t)
			return nil
		}},
		{"research", func(ctx context.Context, s *State) error {
			fmt.Fprintf(p.progress, "researching %q\n", s.Topic)
			out, err := p.researcher.Research(ctx, s.Topic)
			if err != nil {
				return err
			}
			s.ResearchResults = out.Summary
			s.Sources = out.Results
			s.appendMessage(types.RoleTool, out.Summary)
			return nil
		}},
		{"write", func(ctx context.Context, s *State) error {
			fmt.Fprintf(p.progress, "writing paper for %q\n", s.Topic)
			content, err := p.writer.Generate(ctx, s.Topic, s.ResearchResults)
			if err != nil {
				return err
			}
			s.PaperContent = content
			s.appendMessage(types.RoleAssistant, content)
			return nil
		}},
		{"export", func(_ context.Context, s *State) error {
			fmt.Fprintf(p.progress, "exporting documents for %q\n", s.Topic)

			docxPath, err := p.exporter.Docx(s.PaperContent, s.Topic)
			if err != nil {
				s.Exports = append(s.Exports, types.ExportResult{Format: types.FormatDocx})
				return err
			}
			s.Exports = append(s.Exports, types.ExportResult{Format: types.FormatDocx, Path: docxPath, Success: true})
			s.OutputPaths = append(s.OutputPaths, docxPath)

			pdfPath, err := p.exporter.PDF(s.PaperContent, s.Topic)
			if err != nil {
				s.Exports = append(s.Exports, types.ExportResult{Format: types.FormatPDF})
				return err
			}
			s.Exports = append(s.Exports, types.ExportResult{Format: types.FormatPDF, Path: pdfPath, Success: true})
			s.OutputPaths = append(s.OutputPaths, pdfPath)
			return nil
		}},
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clarynt/clarynt/internal/assemble"
	"github.com/clarynt/clarynt/internal/chat"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/outcome"
	"github.com/clarynt/clarynt/internal/report"
	"github.com/clarynt/clarynt/internal/store"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":             true,
		"demo":           s.cfg.DemoMode,
		"has_openai_key": s.cfg.APIKey != "",
	})
}

// handleDemoConfig returns a pre-filled example system so the UI can be
// exercised without typing.
func (s *Server) handleDemoConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"system_name":      "HireAI Resume Screener",
		"intended_purpose": "Screen and rank job applicants based on predicted job fit for a given role.",
		"use_case":         "Employment (recruitment & selection)",
		"risk_notes": "- Risk of algorithmic discrimination via correlated features (education, employment gaps)\n" +
			"- Automation bias among recruiters; over-reliance on AI-generated scores\n" +
			"- Drift across geographies/roles; calibration degradation\n" +
			"- PII handling concerns; explanation text may reveal sensitive attributes\n",
		"free_text_notes": "Model: gradient-boosted trees; PII masking + fairness checks; human review required per CAIA.",
		"ephemeral":       false,
	})
}

type generateRequest struct {
	report.Input
	Ephemeral bool `json:"ephemeral"`
}

type generateResponse struct {
	Report    string          `json:"report"`
	Usage     llm.Usage       `json:"usage"`
	Sources   []report.Source `json:"sources"`
	ProjectID *uint           `json:"project_id"`
	CostUSD   float64         `json:"cost_usd"`
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrBadRequest("")
	}
	if errs := validateStruct(&req.Input); len(errs) > 0 {
		return NewValidationError(errs)
	}
	return s.makeReport(c, req.Input, "", req.Ephemeral)
}

// handleGenerateWithFile accepts the same report inputs as multipart form
// fields plus an uploaded YAML model metadata file.
func (s *Server) handleGenerateWithFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest("metadata file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return ErrBadRequest("cannot open metadata file")
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, 1<<20))
	if err != nil {
		return ErrBadRequest("cannot read metadata file")
	}
	modelMeta, err := report.NormalizeModelMeta(raw)
	if err != nil {
		return ErrBadRequest(err.Error())
	}

	in := report.Input{
		SystemName:      c.FormValue("system_name"),
		IntendedPurpose: c.FormValue("intended_purpose"),
		UseCase:         c.FormValue("use_case"),
		RiskNotes:       c.FormValue("risk_notes"),
		FreeTextNotes:   c.FormValue("free_text_notes"),
	}
	if errs := validateStruct(&in); len(errs) > 0 {
		return NewValidationError(errs)
	}
	ephemeral := c.FormValue("ephemeral") == "true"
	return s.makeReport(c, in, modelMeta, ephemeral)
}

func (s *Server) makeReport(c *fiber.Ctx, in report.Input, modelMeta string, ephemeral bool) error {
	if s.cfg.DemoMode {
		return s.demoReport(c, in, modelMeta, ephemeral)
	}
	if err := s.requireGeneration(); err != nil {
		return err
	}

	res, err := report.Generate(c.Context(), report.Deps{
		Generator:  s.gen,
		Provider:   s.provider,
		Index:      s.index,
		PricePer1K: s.cfg.PricePer1K,
	}, in, modelMeta)
	if err != nil {
		return err
	}

	var projectID *uint
	if !ephemeral {
		id, err := s.saveProject(c, in, res)
		if err != nil {
			return err
		}
		projectID = &id
	}
	return c.JSON(generateResponse{
		Report:    res.Report,
		Usage:     res.Usage,
		Sources:   res.Sources,
		ProjectID: projectID,
		CostUSD:   res.CostUSD,
	})
}

func (s *Server) saveProject(c *fiber.Ctx, in report.Input, res *report.Result) (uint, error) {
	sourcesJSON, err := json.Marshal(res.Sources)
	if err != nil {
		return 0, fmt.Errorf("cannot encode sources: %w", err)
	}
	p := &store.Project{
		SystemName:      in.SystemName,
		IntendedPurpose: in.IntendedPurpose,
		UseCase:         in.UseCase,
		ReportMD:        res.Report,
		SourcesJSON:     string(sourcesJSON),
		TotalTokens:     res.Usage.TotalTokens,
		CostUSD:         res.CostUSD,
	}
	if err := s.projects.Save(c.Context(), p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Server) demoReport(c *fiber.Ctx, in report.Input, modelMeta string, ephemeral bool) error {
	md := fmt.Sprintf("# CAIA Compliance Documentation (Demo)\n\n## System\n\n**Name:** %s\n\n**Purpose:** %s\n\n**Use-Case:** %s\n%s\n---\n\n*Demo mode: no AI generation was performed.*\n",
		in.SystemName, in.IntendedPurpose, in.UseCase, report.MetaBlock(modelMeta))
	res := &report.Result{Report: md, Sources: []report.Source{}}

	var projectID *uint
	if !ephemeral {
		id, err := s.saveProject(c, in, res)
		if err != nil {
			return err
		}
		projectID = &id
	}
	return c.JSON(generateResponse{
		Report:    md,
		Sources:   res.Sources,
		ProjectID: projectID,
	})
}

func (s *Server) handleListProjects(c *fiber.Ctx) error {
	rows, err := s.projects.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) handleGetProject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return ErrInvalidID()
	}
	p, err := s.projects.Get(c.Context(), uint(id))
	if err == store.ErrNotFound {
		return ErrNotFound("project", id)
	}
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) handleDeleteProject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return ErrInvalidID()
	}
	err = s.projects.Delete(c.Context(), uint(id))
	if err == store.ErrNotFound {
		return ErrNotFound("project", id)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

type outcomeRequest struct {
	Outcome outcome.Outcome   `json:"outcome" validate:"required"`
	Answers map[string]string `json:"answers"`
}

func (s *Server) handleOutcomeDocumentation(c *fiber.Ctx) error {
	var req outcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrBadRequest("")
	}
	if errs := validateStruct(&req); len(errs) > 0 {
		return NewValidationError(errs)
	}

	if s.cfg.DemoMode {
		return c.JSON(fiber.Map{
			"documents": fiber.Map{"demo_report": s.demoOutcomeReport(req)},
			"usage":     fiber.Map{"total_tokens": 0},
		})
	}

	if len(assemble.RequiredKinds(req.Outcome)) == 0 {
		return c.JSON(fiber.Map{
			"documents": fiber.Map{},
			"usage":     fiber.Map{"total_tokens": 0, "prompt_tokens": 0, "completion_tokens": 0},
		})
	}

	if err := s.requireGeneration(); err != nil {
		return err
	}
	set, err := assemble.Assemble(c.Context(), s.gen, req.Outcome, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":        set.ID,
		"documents": set.Documents,
		"usage":     set.Usage,
	})
}

func (s *Server) demoOutcomeReport(req outcomeRequest) string {
	title, requirements := outcome.Resolve(s.cfg.RegsDir, req.Outcome)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n---\n\n## Your Provided Information\n\n", title, requirements)
	if len(req.Answers) == 0 {
		b.WriteString("*No specific answers provided yet.*\n")
	} else {
		b.WriteString(assemble.RenderAnswers(req.Answers))
	}
	b.WriteString("\n*This is demo mode. In production, AI-generated personalized documentation would appear here.*")
	return b.String()
}

func (s *Server) handleChecklist(c *fiber.Ctx) error {
	var req outcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrBadRequest("")
	}
	if errs := validateStruct(&req); len(errs) > 0 {
		return NewValidationError(errs)
	}

	if s.cfg.DemoMode {
		return c.JSON(fiber.Map{
			"checklist": []string{
				"Verify small business exemption criteria",
				"Review developer documentation",
				"Create internal AI use policy",
				"Designate consumer inquiry contact",
			},
			"usage": fiber.Map{"total_tokens": 0},
		})
	}

	switch req.Outcome {
	case outcome.NotSubject, outcome.NotAISystem, outcome.NotDeveloper:
		// no generator call for these outcomes
	default:
		if err := s.requireGeneration(); err != nil {
			return err
		}
	}

	cl, err := assemble.GenerateChecklist(c.Context(), s.gen, s.cfg.RegsDir, req.Outcome, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(cl)
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chat.Request
	if err := c.BodyParser(&req); err != nil {
		return ErrBadRequest("")
	}
	if errs := validateStruct(&req); len(errs) > 0 {
		return NewValidationError(errs)
	}

	if s.cfg.DemoMode {
		return c.JSON(chat.Response{
			Message:   fmt.Sprintf("Demo mode: I received your question '%s'. In production, I would use RAG to answer based on SB 24-205.", req.Message),
			Citations: []chat.Citation{},
			SuggestedQuestions: []string{
				"What is algorithmic discrimination?",
				"When is the compliance deadline?",
				"What are deployer obligations?",
			},
		})
	}

	if err := s.requireGeneration(); err != nil {
		return err
	}
	resp, err := chat.Ask(c.Context(), chat.Deps{
		Generator: s.gen,
		Provider:  s.provider,
		Index:     s.index,
	}, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

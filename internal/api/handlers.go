package api

import (
	"net/http"

	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Wire types ---

type capabilityJSON struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Impact   string `json:"impact,omitempty"`
	Priority int    `json:"priority"`
}

type roleJSON struct {
	Entity string `json:"entity"`
	Role   string `json:"role"`
}

type relationJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type,omitempty"`
}

type metricsJSON struct {
	OldComplexity int `json:"old_complexity"`
	NewComplexity int `json:"new_complexity"`
	LinesAdded    int `json:"lines_added"`
	LinesDeleted  int `json:"lines_deleted"`
	ValueScore    int `json:"value_score"`
}

type summaryJSON struct {
	Title        string           `json:"title"`
	Header       string           `json:"header,omitempty"`
	Body         string           `json:"body"`
	Intent       string           `json:"intent"`
	Scope        string           `json:"scope"`
	Capabilities []capabilityJSON `json:"capabilities,omitempty"`
	Roles        []roleJSON       `json:"roles,omitempty"`
	Relations    []relationJSON   `json:"relations,omitempty"`
	Chain        string           `json:"chain,omitempty"`
	Metrics      metricsJSON      `json:"metrics"`
	Files        []string         `json:"files,omitempty"`
	AppliedFixes []string         `json:"applied_fixes,omitempty"`
}

func toWire(s *model.Summary) summaryJSON {
	out := summaryJSON{
		Title:  s.Title,
		Header: s.Header(),
		Body:   s.Body,
		Intent: s.Intent.String(),
		Scope:  s.Scope.String(),
		Chain:  s.Chain,
		Files:  s.Files,
		Metrics: metricsJSON{
			OldComplexity: s.Metrics.OldComplexity,
			NewComplexity: s.Metrics.NewComplexity,
			LinesAdded:    s.Metrics.LinesAdded,
			LinesDeleted:  s.Metrics.LinesDeleted,
			ValueScore:    s.Metrics.ValueScore,
		},
		AppliedFixes: s.AppliedFixes,
	}
	for _, c := range s.Capabilities {
		out.Capabilities = append(out.Capabilities, capabilityJSON{ID: c.ID, Label: c.Label, Impact: c.Impact, Priority: c.Priority})
	}
	for _, r := range s.Roles {
		out.Roles = append(out.Roles, roleJSON{Entity: r.Entity, Role: r.Role})
	}
	for _, r := range s.Relations {
		out.Relations = append(out.Relations, relationJSON{From: r.From, To: r.To, Type: r.Type})
	}
	return out
}

func fromWire(in summaryJSON) *model.Summary {
	intent, _ := model.ParseIntent(in.Intent)
	scope, _ := model.ParseDomain(in.Scope)
	s := &model.Summary{
		Title:  in.Title,
		Body:   in.Body,
		Intent: intent,
		Scope:  scope,
		Chain:  in.Chain,
		Files:  in.Files,
		Metrics: model.Metrics{
			OldComplexity: in.Metrics.OldComplexity,
			NewComplexity: in.Metrics.NewComplexity,
			LinesAdded:    in.Metrics.LinesAdded,
			LinesDeleted:  in.Metrics.LinesDeleted,
			ValueScore:    in.Metrics.ValueScore,
		},
	}
	for _, c := range in.Capabilities {
		s.Capabilities = append(s.Capabilities, model.Capability{ID: c.ID, Label: c.Label, Impact: c.Impact, Priority: c.Priority})
	}
	for _, r := range in.Roles {
		s.Roles = append(s.Roles, model.Role{Entity: r.Entity, Role: r.Role})
	}
	for _, r := range in.Relations {
		s.Relations = append(s.Relations, model.Relation{From: r.From, To: r.To, Type: r.Type})
	}
	return s
}

type validationJSON struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Score    int      `json:"score"`
	Fixes    []struct {
		Kind   string `json:"kind"`
		Detail string `json:"detail"`
	} `json:"fixes,omitempty"`
}

func toValidationWire(r *model.ValidationResult) validationJSON {
	out := validationJSON{
		Valid:    r.Valid,
		Errors:   r.Errors,
		Warnings: r.Warnings,
		Score:    r.Score,
	}
	for _, f := range r.Fixes {
		out.Fixes = append(out.Fixes, struct {
			Kind   string `json:"kind"`
			Detail string `json:"detail"`
		}{f.Kind, f.Detail})
	}
	return out
}

// --- Summary ---

type summarizeRequest struct {
	Diff string `json:"diff"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parsing diff: "+err.Error())
		return
	}

	cs := diff.NewChangeSet(ds)
	sum := s.generator.Generate(s.analyzer.Run(cs, ""), cs)

	writeJSON(w, http.StatusOK, toWire(sum))
}

// --- Validate ---

type validateRequest struct {
	Summary summaryJSON `json:"summary"`
}

type validateResponse struct {
	Result validationJSON `json:"result"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Summary.Title == "" {
		writeError(w, http.StatusBadRequest, "summary.title is required")
		return
	}

	result := s.validator.Validate(fromWire(req.Summary))
	writeJSON(w, http.StatusOK, validateResponse{Result: toValidationWire(result)})
}

// --- Fix ---

type fixResponse struct {
	Summary summaryJSON    `json:"summary"`
	Result  validationJSON `json:"result"`
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Summary.Title == "" {
		writeError(w, http.StatusBadRequest, "summary.title is required")
		return
	}

	sum := fromWire(req.Summary)
	s.fixer.Fix(sum)
	result := s.validator.Validate(sum)

	writeJSON(w, http.StatusOK, fixResponse{
		Summary: toWire(sum),
		Result:  toValidationWire(result),
	})
}

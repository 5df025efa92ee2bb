package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/branchboard/branchboard/pkg/buildinfo"
	"github.com/branchboard/branchboard/pkg/cache"
	"github.com/branchboard/branchboard/pkg/diff"
	bberrors "github.com/branchboard/branchboard/pkg/errors"
	"github.com/branchboard/branchboard/pkg/layout"
	"github.com/branchboard/branchboard/pkg/observability"
	"github.com/branchboard/branchboard/pkg/plan"
	"github.com/branchboard/branchboard/pkg/snapshot"
	"github.com/branchboard/branchboard/pkg/store"
)

// layoutRequest is the payload for POST /api/layout.
type layoutRequest struct {
	Snapshot *snapshot.Snapshot `json:"snapshot"`

	// Optional tentative overlay.
	Plan   *plan.Plan `json:"plan,omitempty"`
	Anchor string     `json:"anchor,omitempty"`

	// Optional orientation override; empty keeps the configured one.
	Orientation string `json:"orientation,omitempty"`
}

// diffRequest is the payload for POST /api/diff.
type diffRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// diffResponse carries the diff plus the counts the dashboard shows in
// the review header.
type diffResponse struct {
	Lines   []diff.Line `json:"lines"`
	Added   int         `json:"added"`
	Removed int         `json:"removed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, bberrors.Wrap(bberrors.ErrCodeInvalidRequest, err, "decode layout request"))
		return
	}
	if req.Snapshot == nil {
		s.writeError(w, bberrors.New(bberrors.ErrCodeInvalidSnapshot, "request has no snapshot"))
		return
	}

	cfg := s.cfg.LayoutOptions()
	if req.Orientation != "" {
		switch o := layout.Orientation(req.Orientation); o {
		case layout.OrientationRows, layout.OrientationColumns:
			cfg.Orientation = o
		default:
			s.writeError(w, bberrors.New(bberrors.ErrCodeInvalidRequest, "unknown orientation %q", req.Orientation))
			return
		}
	}

	ctx := r.Context()
	key := s.layoutKey(req, cfg)
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "layout")
		s.writeRawJSON(w, http.StatusOK, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	in := layout.Input{DefaultBranch: req.Snapshot.DefaultBranch}
	in.Nodes, in.Edges = req.Snapshot.Graph()
	if req.Plan != nil {
		in.Tasks = req.Plan.Tasks
		in.Deps = req.Plan.Deps
		in.Anchor = req.Anchor
		if _, ok := req.Snapshot.Node(req.Anchor); !ok && len(in.Tasks) > 0 {
			// The engine drops the overlay when the anchor is not a real
			// node; surface that instead of failing the request.
			observability.Layout().OnOverlaySkipped(ctx, req.Anchor)
		}
	}

	// Compute itself cannot fail, so the completion hook carries the
	// marshal outcome.
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, len(in.Nodes), len(in.Tasks))
	res := layout.Compute(in, cfg)
	data, err := snapshot.MarshalLayout(snapshot.FromResult(res))
	observability.Layout().OnLayoutComplete(ctx, len(res.Nodes), time.Since(start), err)
	if err != nil {
		s.writeError(w, bberrors.Wrap(bberrors.ErrCodeInternal, err, "marshal layout"))
		return
	}

	if err := s.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		s.logger.Warn("cache layout", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	s.writeRawJSON(w, http.StatusOK, data)
}

// layoutKey derives the content-addressed cache key for a layout request.
func (s *Server) layoutKey(req layoutRequest, cfg layout.Config) string {
	snapHash := cache.Hash(req.Snapshot.Hashable())
	planHash := ""
	if req.Plan != nil {
		data, _ := json.Marshal(struct {
			Plan   *plan.Plan `json:"plan"`
			Anchor string     `json:"anchor"`
		}{req.Plan, req.Anchor})
		planHash = cache.Hash(data)
	}
	return cache.LayoutKey(snapHash, planHash, cfg)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, bberrors.Wrap(bberrors.ErrCodeInvalidRequest, err, "decode diff request"))
		return
	}

	ctx := r.Context()
	start := time.Now()
	observability.Diff().OnDiffStart(ctx, lineCount(req.Old), lineCount(req.New))
	lines := diff.Lines(req.Old, req.New)
	observability.Diff().OnDiffComplete(ctx, len(lines), time.Since(start))

	resp := diffResponse{Lines: lines}
	for _, l := range lines {
		switch l.Op {
		case diff.OpAdded:
			resp.Added++
		case diff.OpRemoved:
			resp.Removed++
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// lineCount mirrors the diff engine's splitting: the empty string has no
// lines.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var rec store.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, bberrors.Wrap(bberrors.ErrCodeInvalidRequest, err, "decode plan"))
		return
	}
	if rec.Name == "" {
		s.writeError(w, bberrors.New(bberrors.ErrCodeInvalidPlan, "plan has no name"))
		return
	}

	saved, err := s.store.Put(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// writeError maps structured error codes onto HTTP statuses and emits a
// machine-readable error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch bberrors.GetCode(err) {
	case bberrors.ErrCodeInvalidRequest, bberrors.ErrCodeInvalidSnapshot,
		bberrors.ErrCodeInvalidPlan, bberrors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case bberrors.ErrCodeNotFound, bberrors.ErrCodePlanNotFound, bberrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    string(bberrors.GetCode(err)),
			"message": bberrors.UserMessage(err),
		},
	})
}

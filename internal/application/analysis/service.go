package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/analysis"
)

// CompoundSource is the record lookup side of the pipeline (PubChem in
// production, a stub in tests).
type CompoundSource interface {
	CIDByName(ctx context.Context, name string) (cid int64, path string, err error)
	DetailPaths(cid int64) []string
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
}

// Clock abstraction so the service is easy to test
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the compound evaluation use-cases.
// Safe for concurrent use.
type Service struct {
	Repo      domain.Repository
	Source    CompoundSource
	Model     domain.VerdictModel
	Artifacts domain.ArtifactStore
	Clock     Clock
}

// evaluationDoc is the artifact written per evaluation: the report plus the
// brief that produced it.
type evaluationDoc struct {
	Report *domain.Report `json:"report"`
	Brief  Brief          `json:"brief"`
}

// Evaluate runs the full pipeline for one compound: resolve the CID, fetch
// detail records, condense them into a brief, ask the verdict model, then
// persist and archive the report. An unknown compound still produces a
// report (the model sees an empty brief and answers Indeterminate).
func (s *Service) Evaluate(ctx context.Context, compound string) (*domain.Report, error) {
	name := strings.TrimSpace(compound)
	if name == "" {
		return nil, domain.ErrBlankCompound
	}

	start := s.Clock.Now()
	var trace []string

	cid, path, err := s.Source.CIDByName(ctx, name)
	trace = append(trace, path)
	if err != nil {
		return nil, fmt.Errorf("resolve compound %q: %w", name, err)
	}

	records := map[string]json.RawMessage{}
	if cid != 0 {
		for _, p := range s.Source.DetailPaths(cid) {
			blob, err := s.Source.Fetch(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", p, err)
			}
			records[p] = blob
			trace = append(trace, p)
		}
	}

	brief := Summarize(records)
	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return nil, fmt.Errorf("encode brief: %w", err)
	}

	verdict, err := s.Model.Verdict(ctx, string(briefJSON))
	if err != nil {
		return nil, fmt.Errorf("verdict for %q: %w", name, err)
	}

	rationale := verdict.Rationale
	if rationale == "" {
		rationale = "No rationale produced."
	}

	report := &domain.Report{
		ID:         newReportID(name),
		Compound:   name,
		Conclusion: verdict.Conclusion,
		Relevance:  verdict.Relevance,
		Confidence: verdict.Confidence,
		Rationale:  rationale,
		ToolTrace:  trace,
		DurationMS: s.Clock.Now().Sub(start).Milliseconds(),
		CreatedAt:  start,
	}

	s.archive(ctx, report, brief)

	if s.Repo != nil {
		if err := s.Repo.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save report %s: %w", report.ID, err)
		}
	}
	return report, nil
}

// archive uploads the evaluation document. Upload failures do not fail the
// evaluation; the report itself still goes to the repository.
func (s *Service) archive(ctx context.Context, report *domain.Report, brief Brief) {
	if s.Artifacts == nil {
		return
	}
	doc, err := json.Marshal(evaluationDoc{Report: report, Brief: brief})
	if err != nil {
		log.Printf("warning: encode evaluation doc for %s: %v", report.ID, err)
		return
	}
	key := fmt.Sprintf("evaluations/%s.json", report.ID)
	url, err := s.Artifacts.UploadJSON(ctx, key, doc)
	if err != nil {
		log.Printf("warning: upload evaluation doc for %s: %v", report.ID, err)
		return
	}
	report.ArtifactURL = url
}

// Get returns one report by id.
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	return s.Repo.Get(ctx, id)
}

// LatestByCompound returns the most recent report for a compound.
func (s *Service) LatestByCompound(ctx context.Context, compound string) (*domain.Report, error) {
	return s.Repo.LatestByCompound(ctx, compound)
}

// Paginate returns a page of reports, newest first.
func (s *Service) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Report, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

func newReportID(compound string) domain.ReportID {
	slug := strings.ToLower(strings.Join(strings.Fields(compound), "-"))
	return domain.ReportID(fmt.Sprintf("%s-%s", uuid.New().String(), slug))
}

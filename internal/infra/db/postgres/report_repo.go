package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/analysis"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts or updates a report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO fibrosis_reports
  (id, compound, conclusion, relevance, confidence, rationale, tool_trace, artifact_url, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  conclusion=EXCLUDED.conclusion,
  relevance=EXCLUDED.relevance,
  confidence=EXCLUDED.confidence,
  rationale=EXCLUDED.rationale,
  tool_trace=EXCLUDED.tool_trace,
  artifact_url=EXCLUDED.artifact_url,
  duration_ms=EXCLUDED.duration_ms;
`
	trace := rep.ToolTrace
	if trace == nil {
		trace = []string{}
	}
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return err
	}
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		rep.ID, rep.Compound, rep.Conclusion, rep.Relevance, rep.Confidence,
		rep.Rationale, traceJSON, rep.ArtifactURL, rep.DurationMS, createdAt)
	return err
}

const selectColumns = `id, compound, conclusion, relevance, confidence, rationale, tool_trace, artifact_url, duration_ms, created_at`

// Get returns one report by id
func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `SELECT ` + selectColumns + ` FROM fibrosis_reports WHERE id=$1;`
	return scanReport(r.db.QueryRowContext(ctx, q, id))
}

// LatestByCompound returns the most recent report for a compound
func (r *ReportRepository) LatestByCompound(ctx context.Context, compound string) (*domain.Report, error) {
	const q = `SELECT ` + selectColumns + `
FROM fibrosis_reports
WHERE compound=$1
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	return scanReport(r.db.QueryRowContext(ctx, q, compound))
}

// Paginate returns a page of reports ordered by created_at desc
func (r *ReportRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Report, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `SELECT ` + selectColumns + `
FROM fibrosis_reports
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var rep domain.Report
	var trace []byte
	var created time.Time
	err := row.Scan(&rep.ID, &rep.Compound, &rep.Conclusion, &rep.Relevance, &rep.Confidence,
		&rep.Rationale, &trace, &rep.ArtifactURL, &rep.DurationMS, &created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	rep.CreatedAt = created
	if err := json.Unmarshal(trace, &rep.ToolTrace); err != nil {
		return nil, err
	}
	return &rep, nil
}

package mysql

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
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  conclusion=VALUES(conclusion), relevance=VALUES(relevance), confidence=VALUES(confidence),
  rationale=VALUES(rationale), tool_trace=VALUES(tool_trace), artifact_url=VALUES(artifact_url),
  duration_ms=VALUES(duration_ms);
`
	trace, err := encodeTrace(rep.ToolTrace)
	if err != nil {
		return err
	}
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, rep.Compound, rep.Conclusion, rep.Relevance, rep.Confidence,
		rep.Rationale, trace, rep.ArtifactURL, rep.DurationMS, createdAt)
	return err
}

const selectColumns = `id, compound, conclusion, relevance, confidence, rationale, tool_trace, artifact_url, duration_ms, created_at`

// Get returns one report by id
func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = `SELECT ` + selectColumns + ` FROM fibrosis_reports WHERE id=?;`
	return scanReport(r.db.QueryRowContext(ctx, q, id))
}

// LatestByCompound returns the most recent report for a compound
func (r *ReportRepository) LatestByCompound(ctx context.Context, compound string) (*domain.Report, error) {
	const q = `SELECT ` + selectColumns + `
FROM fibrosis_reports
WHERE compound=?
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
LIMIT ? OFFSET ?;`
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

// encodeTrace stores the tool trace as a JSON array; the column requires
// valid JSON, so a nil trace becomes an empty array.
func encodeTrace(trace []string) ([]byte, error) {
	if trace == nil {
		trace = []string{}
	}
	return json.Marshal(trace)
}

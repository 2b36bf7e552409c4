package analysis

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ReportID) (*Report, error)
	LatestByCompound(ctx context.Context, compound string) (*Report, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Report, error)
}

// VerdictModel port (interface for the LLM that scores a compound brief)
type VerdictModel interface {
	Verdict(ctx context.Context, brief string) (Verdict, error)
}

// ArtifactStore port (interface for evaluation document storage)
type ArtifactStore interface {
	UploadJSON(ctx context.Context, key string, data []byte) (string, error)
}

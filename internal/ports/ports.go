package ports

import (
	"context"

	"DocLens/internal/domain"
)

// DocumentFetcher pulls raw document text from a URL. Failures are carried
// inside the result.
type DocumentFetcher interface {
	Fetch(ctx context.Context, sourceURL, domainKeywords string) domain.FetchResult
}

// Judge produces an originality and structural-risk verdict. Implementations
// validate the returned report before handing it back.
type Judge interface {
	Judge(ctx context.Context, input domain.JudgeInput) (domain.EvaluationReport, error)
}

// PreviewExtractor derives page metadata from a fetched body.
type PreviewExtractor interface {
	Extract(document string) (domain.Preview, error)
}

package gateway

import (
	"context"

	"resume-builder/internal/usecase"
	"resume-builder/pkg/jd"
)

// PostingFetcher downloads and extracts a job posting.
type PostingFetcher interface {
	Fetch(ctx context.Context, url string) (jd.Posting, error)
}

// LocalJobDescriptions serves sessions from an in-process fetcher instead
// of the /api/fetch-jd route.
type LocalJobDescriptions struct {
	Postings PostingFetcher
}

func (l LocalJobDescriptions) FetchJobDescription(ctx context.Context, url string) (usecase.JobDescription, error) {
	p, err := l.Postings.Fetch(ctx, url)
	if err != nil {
		return usecase.JobDescription{}, err
	}
	return usecase.JobDescription{URL: url, Title: p.Title, Description: p.Description}, nil
}

package duplicatesrv

import (
	"context"
	"runtime"
	"sort"

	"github.com/Abraxas-365/talentrelay/pkg/errx"
	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"golang.org/x/sync/errgroup"
)

// ResumeSource reads the stored resumes
type ResumeSource interface {
	ListAll(ctx context.Context) ([]*resume.ParsedResume, error)
	GetLatestForCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ParsedResume, error)
}

// DuplicateService finds candidates whose resumes describe the same person
type DuplicateService struct {
	resumes ResumeSource
	cfg     duplicate.Config
	workers int
}

func NewDuplicateService(resumes ResumeSource, cfg duplicate.Config) *DuplicateService {
	if cfg.Validate() != nil {
		cfg = duplicate.DefaultConfig()
	}
	return &DuplicateService{
		resumes: resumes,
		cfg:     cfg,
		workers: runtime.GOMAXPROCS(0),
	}
}

// FindDuplicates compares the latest resume of every linked candidate with
// every other one. A nil threshold uses the configured one.
func (s *DuplicateService) FindDuplicates(ctx context.Context, threshold *float64) (*duplicate.ScanResponse, error) {
	cfg := s.cfg
	if threshold != nil {
		cfg.Threshold = *threshold
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	all, err := s.resumes.ListAll(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list resumes", errx.TypeInternal)
	}
	profiles := latestProfiles(all)

	matches, err := s.scan(ctx, profiles, cfg.Threshold)
	if err != nil {
		return nil, err
	}
	clusters := duplicate.Clusters(profiles, matches)

	logx.Infof("Duplicate scan over %d candidates found %d clusters (threshold %.2f)",
		len(profiles), len(clusters), cfg.Threshold)

	return &duplicate.ScanResponse{
		Threshold:         cfg.Threshold,
		CandidatesScanned: len(profiles),
		Clusters:          clusters,
		Total:             len(clusters),
	}, nil
}

// scan runs the rows of the pair matrix in parallel. profiles is read-only
// while the workers run; each row writes only its own slot.
func (s *DuplicateService) scan(ctx context.Context, profiles []duplicate.Profile, threshold float64) ([]duplicate.Match, error) {
	rows := make([][]duplicate.Match, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = duplicate.MatchRow(profiles, i, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err, "duplicate scan interrupted", errx.TypeInternal)
	}

	var matches []duplicate.Match
	for _, row := range rows {
		matches = append(matches, row...)
	}
	return matches, nil
}

// Compare scores two candidates' latest resumes against each other
func (s *DuplicateService) Compare(ctx context.Context, a, b kernel.CandidateID) (*duplicate.CompareResponse, error) {
	if a.IsEmpty() || b.IsEmpty() || a == b {
		return nil, duplicate.ErrInvalidRequest().WithDetail("message", "two different candidate ids are required")
	}

	ra, err := s.resumes.GetLatestForCandidate(ctx, a)
	if err != nil {
		return nil, err
	}
	rb, err := s.resumes.GetLatestForCandidate(ctx, b)
	if err != nil {
		return nil, err
	}

	similarity := duplicate.Compare(duplicate.ProfileFromResume(ra), duplicate.ProfileFromResume(rb))
	return &duplicate.CompareResponse{
		A:           a,
		B:           b,
		Similarity:  similarity,
		IsDuplicate: similarity.Total > s.cfg.Threshold,
	}, nil
}

// latestProfiles keeps the most recent processed resume of each linked
// candidate, ordered by candidate id
func latestProfiles(all []*resume.ParsedResume) []duplicate.Profile {
	latest := make(map[kernel.CandidateID]*resume.ParsedResume)
	for _, r := range all {
		if !r.HasCandidate() || !r.IsProcessed() {
			continue
		}
		id := *r.CandidateID
		if current, ok := latest[id]; !ok || !r.UploadDate.Before(current.UploadDate) {
			latest[id] = r
		}
	}

	profiles := make([]duplicate.Profile, 0, len(latest))
	for _, r := range latest {
		profiles = append(profiles, duplicate.ProfileFromResume(r))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CandidateID < profiles[j].CandidateID
	})
	return profiles
}

package duplicate

import (
	"sort"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
)

// Config holds the duplicate threshold
type Config struct {
	// Threshold is the similarity a pair must exceed to be a duplicate
	Threshold float64
}

func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Validate requires a threshold in (0,1]
func (c Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return ErrInvalidThreshold().WithDetail("threshold", c.Threshold)
	}
	return nil
}

// Match is a pair of profiles above the threshold
type Match struct {
	A          kernel.CandidateID `json:"a"`
	B          kernel.CandidateID `json:"b"`
	Similarity Similarity         `json:"similarity"`
}

// Cluster groups candidates whose resumes describe the same person. CandidateID
// is the earliest member in scan order.
type Cluster struct {
	CandidateID  kernel.CandidateID   `json:"candidate_id"`
	Duplicates   []kernel.CandidateID `json:"duplicates"`
	AverageScore float64              `json:"average_score"`
	Matches      []Match              `json:"matches"`
}

// MatchRow compares profiles[i] with every later profile
func MatchRow(profiles []Profile, i int, threshold float64) []Match {
	var matches []Match
	for j := i + 1; j < len(profiles); j++ {
		s := Compare(profiles[i], profiles[j])
		if s.Total > threshold {
			matches = append(matches, Match{A: profiles[i].CandidateID, B: profiles[j].CandidateID, Similarity: s})
		}
	}
	return matches
}

// Detect compares every pair of profiles and clusters the matches
func Detect(profiles []Profile, cfg Config) []Cluster {
	var matches []Match
	for i := range profiles {
		matches = append(matches, MatchRow(profiles, i, cfg.Threshold)...)
	}
	return Clusters(profiles, matches)
}

// Clusters joins matched pairs into connected components, so A~B and B~C put
// A, B and C together even when A and C fall below the threshold.
func Clusters(profiles []Profile, matches []Match) []Cluster {
	position := make(map[kernel.CandidateID]int, len(profiles))
	for i, p := range profiles {
		position[p.CandidateID] = i
	}

	uf := newUnionFind(len(profiles))
	for _, m := range matches {
		uf.union(position[m.A], position[m.B])
	}

	byRoot := make(map[int]*Cluster)
	var roots []int
	for i, p := range profiles {
		root := uf.find(i)
		c, ok := byRoot[root]
		if !ok {
			c = &Cluster{CandidateID: p.CandidateID, Duplicates: []kernel.CandidateID{}, Matches: []Match{}}
			byRoot[root] = c
			roots = append(roots, root)
			continue
		}
		c.Duplicates = append(c.Duplicates, p.CandidateID)
	}

	for _, m := range matches {
		c := byRoot[uf.find(position[m.A])]
		c.Matches = append(c.Matches, m)
	}

	clusters := []Cluster{}
	for _, root := range roots {
		c := byRoot[root]
		if len(c.Duplicates) == 0 {
			continue
		}
		sum := 0.0
		for _, m := range c.Matches {
			sum += m.Similarity.Total
		}
		c.AverageScore = round4(sum / float64(len(c.Matches)))
		sort.SliceStable(c.Matches, func(i, j int) bool {
			return c.Matches[i].Similarity.Total > c.Matches[j].Similarity.Total
		})
		clusters = append(clusters, *c)
	}
	return clusters
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

package duplicate

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// ScanResponse lists the duplicate clusters found among all linked resumes
type ScanResponse struct {
	Threshold         float64   `json:"threshold"`
	CandidatesScanned int       `json:"candidates_scanned"`
	Clusters          []Cluster `json:"clusters"`
	Total             int       `json:"total"`
}

// CompareResponse is the similarity breakdown of two candidates' latest resumes
type CompareResponse struct {
	A           kernel.CandidateID `json:"a"`
	B           kernel.CandidateID `json:"b"`
	Similarity  Similarity         `json:"similarity"`
	IsDuplicate bool               `json:"is_duplicate"`
}

package resume

import "github.com/Abraxas-365/talentrelay/pkg/kernel"

// ParseTextRequest parses raw resume text, skipping file validation
type ParseTextRequest struct {
	Text        string              `json:"text"`
	CandidateID *kernel.CandidateID `json:"candidate_id,omitempty"`
}

// ParseFileRequest carries an uploaded file
type ParseFileRequest struct {
	FileName    string              `json:"file_name"`
	Size        int64               `json:"size"`
	MimeType    string              `json:"mime_type"`
	Data        []byte              `json:"-"`
	CandidateID *kernel.CandidateID `json:"candidate_id,omitempty"`
}

// ParseAsyncRequest queues an uploaded file for background parsing
type ParseAsyncRequest struct {
	ParseFileRequest
}

type ListResumesRequest struct {
	CandidateID *kernel.CandidateID `query:"candidate_id"`
	kernel.PaginationOptions
}

type ListResumesResponse = kernel.Paginated[ParsedResume]

// ParseCVStatusResponse is the health probe body of the parse-cv boundary
type ParseCVStatusResponse struct {
	Status string `json:"status"`
}

const ParseCVStatusAvailable = "available"

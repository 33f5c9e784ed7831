package kernel

// Typed identifiers. Each holds the string form of a UUID generated by the
// owning service, and the empty string means the reference is not set.
type (
	ResumeID                string
	CandidateID             string
	JobID                   string
	ScreeningID             string
	ProcessingJobID         string
	QuestionnaireResponseID string
)

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (id ResumeID) String() string   { return string(id) }
func (id ResumeID) IsEmpty() bool    { return id == "" }

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (id CandidateID) String() string      { return string(id) }
func (id CandidateID) IsEmpty() bool       { return id == "" }

func NewJobID(id string) JobID  { return JobID(id) }
func (id JobID) String() string { return string(id) }
func (id JobID) IsEmpty() bool  { return id == "" }

func NewScreeningID(id string) ScreeningID { return ScreeningID(id) }
func (id ScreeningID) String() string      { return string(id) }
func (id ScreeningID) IsEmpty() bool       { return id == "" }

func NewProcessingJobID(id string) ProcessingJobID { return ProcessingJobID(id) }
func (id ProcessingJobID) String() string          { return string(id) }
func (id ProcessingJobID) IsEmpty() bool           { return id == "" }

func NewQuestionnaireResponseID(id string) QuestionnaireResponseID {
	return QuestionnaireResponseID(id)
}
func (id QuestionnaireResponseID) String() string { return string(id) }
func (id QuestionnaireResponseID) IsEmpty() bool  { return id == "" }

// Package domain holds the core types shared across the ingestion and
// retrieval packages, plus the error taxonomy for the pipeline.
package domain

// SourceTypeResume is the only document type currently indexed.
const SourceTypeResume = "resume"

// MaxChunks caps how many chunks a single corpus may hold.
const MaxChunks = 150

// MinChunkChars is the minimum trimmed length a chunk must have to be indexed.
// Anything shorter is a header, bullet fragment or whitespace noise.
const MinChunkChars = 60

// Page is one page of extracted plain text with its source metadata.
type Page struct {
	Text       string
	SourceFile string
	SourceType string
}

// Chunk is a bounded, filtered segment of source text. It is the unit of
// embedding and retrieval and is immutable once created.
type Chunk struct {
	Text          string `json:"text"`
	SourceID      string `json:"source_id"`
	SourceType    string `json:"source_type"`
	SequenceIndex int    `json:"sequence_index"`
}

// AnalysisRecord is the combined output of one analysis cycle. Exactly one
// record is live at a time ("latest" semantics, no history).
type AnalysisRecord struct {
	ATSScore      int      `json:"ats_score"`
	MissingSkills []string `json:"missing_skills"`
	Suggestions   []string `json:"suggestions"`
	Summary       string   `json:"summary"`
	PrimaryRole   string   `json:"primary_role"`
}

// JobListing is a single external job record. Transient: fetched, filtered,
// formatted and discarded per request.
type JobListing struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	Remote         bool   `json:"remote"`
	Posted         string `json:"posted"`
	Description    string `json:"description"`
	ApplyLink      string `json:"apply_link"`
}

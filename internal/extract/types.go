package extract

import "strings"

// Table is a single table matrix: rows of cells, cells as plain text.
type Table [][]string

// Document is the decoded form of a source file: one text entry per page and,
// per page, the tables found on it. Tables may be nil when the decoder
// produced none.
type Document struct {
	Pages  []string  `json:"pages"`
	Tables [][]Table `json:"tables,omitempty"`
}

// Text returns the page texts joined with newlines.
func (d Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// TablesOn returns the tables found on the page at index i.
func (d Document) TablesOn(i int) []Table {
	if i < 0 || i >= len(d.Tables) {
		return nil
	}
	return d.Tables[i]
}

// PriorArtReference is a cited document keyed by its D-label.
type PriorArtReference struct {
	Label   string `json:"label"`
	DocNo   string `json:"docno"`
	PubDate string `json:"pub_date"`
}

// Objection is one substantive objection section of a FER.
type Objection struct {
	Number    int                 `json:"number"`
	Heading   string              `json:"heading"`
	Body      string              `json:"body"`
	Sections  []string            `json:"sections"`
	Claims    string              `json:"claims"`
	PriorArts []PriorArtReference `json:"prior_arts"`
}

// ClaimBlock is a numbered claim as it appears in an amended claims document.
type ClaimBlock struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// FormalRow is one (category, remark) pair of the PART-III formal requirements.
type FormalRow struct {
	Category string `json:"category"`
	Remark   string `json:"remark"`
}

// Metadata holds the header fields of a FER.
type Metadata struct {
	ApplicationNo   string `json:"application_no"`
	FilingDate      string `json:"filing_date"`
	FerDispatchDate string `json:"fer_dispatch_date"`
	Applicant       string `json:"applicant"`
	Title           string `json:"title"`
	ControllerName  string `json:"controller_name"`
	ExaminerName    string `json:"examiner_name"`
	ReplyDeadline   string `json:"reply_deadline"`
}

// ParseResult is the aggregate produced for a FER. Every field is always
// populated: strings default to "" and lists to empty, never nil.
type ParseResult struct {
	ApplicationNo   string              `json:"application_no"`
	FilingDate      string              `json:"filing_date"`
	FerDispatchDate string              `json:"fer_dispatch_date"`
	Applicant       string              `json:"applicant"`
	Title           string              `json:"title"`
	ControllerName  string              `json:"controller_name"`
	ExaminerName    string              `json:"examiner_name"`
	ReplyDeadline   string              `json:"reply_deadline"`
	PriorArts       []PriorArtReference `json:"prior_arts"`
	Objections      []Objection         `json:"objections"`
}

// NewParseResult returns a ParseResult with empty, non-nil lists.
func NewParseResult() ParseResult {
	return ParseResult{
		PriorArts:  []PriorArtReference{},
		Objections: []Objection{},
	}
}

// CoverSheet holds the fields resolved from a Complete Specification.
type CoverSheet struct {
	Applicant  string `json:"applicant"`
	Title      string `json:"title"`
	Background string `json:"background"`
	Summary    string `json:"summary"`
}

// abstractCandidate is a scored abstract text; only the winner's text leaves
// the extractor.
type abstractCandidate struct {
	text  string
	score int
}

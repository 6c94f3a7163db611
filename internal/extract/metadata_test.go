package extract

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const sampleFERHeader = `THE PATENT OFFICE
Application No.: 202141012345
Date of Filing: 15/03/2021
Date of Dispatch/Email: 10/01/2023
Applicant: Acme Technologies Private Limited
Title of the Invention: Smart irrigation controller
Last date for filing response to the Examination Report: 10/07/2023
Name of the Examiner: Ravi Kumar

Priya Sharma
Controller of Patents`

func TestExtractMetadata(t *testing.T) {
	e := NewDefault()

	got := e.ExtractMetadata(e.Normalize(sampleFERHeader))

	assert.Equal(t, Metadata{
		ApplicationNo:   "202141012345",
		FilingDate:      "15/03/2021",
		FerDispatchDate: "10/01/2023",
		Applicant:       "Acme Technologies Private Limited",
		Title:           "Smart irrigation controller",
		ControllerName:  "Priya Sharma",
		ExaminerName:    "Ravi Kumar",
		ReplyDeadline:   "10/07/2023",
	}, got)
}

func TestExtractMetadata_Empty(t *testing.T) {
	e := NewDefault()
	assert.Equal(t, Metadata{}, e.ExtractMetadata(""))
}

func TestApplicationNumber(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "twelve digit labeled",
			text: "Application No.: 202141012345",
			want: "202141012345",
		},
		{
			name: "slashed form with ten digits keeps digits only",
			text: "Application No.: 20/1234/CHE/2019",
			want: "2012342019",
		},
		{
			name: "office reference form",
			text: "Application No./ CHE/1234/2019",
			want: "CHE/1234/2019",
		},
		{
			name: "bare twelve digits near the top",
			text: "FIRST EXAMINATION REPORT\n202141012345\nDear Sir",
			want: "202141012345",
		},
		{
			name: "no number",
			text: "Examination report without an identifier",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.applicationNumber(tt.text))
		})
	}
}

func TestNormalizeApplicationNo(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		raw  string
		want string
	}{
		{"20/1234/CHE/2019", "2012342019"},
		{"che/1234/19", "CHE/1234/19"},
		{" /IN-123/ ", "IN-123"},
		{"2021 4101 2345", "202141012345"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, e.normalizeApplicationNo(tt.raw))
		})
	}
}

func TestFilingDate_WrappedLine(t *testing.T) {
	e := NewDefault()

	text := "Date of Filing\n:\n04-11-2020\nOther line"
	assert.Equal(t, "04-11-2020", e.filingDate(text))
}

func TestControllerName_Labeled(t *testing.T) {
	e := NewDefault()

	text := "Name of the Controller: Anil Verma\nSignature"
	assert.Equal(t, "Anil Verma", e.controllerName(text))
}

func TestFirstOf_StopsAtFirstSuccess(t *testing.T) {
	var buf bytes.Buffer
	e := New(DefaultOptions(), zerolog.New(&buf))

	calls := 0
	got := e.firstOf("field", []strategy{
		{"empty", func() (string, bool) { calls++; return "", false }},
		{"hit", func() (string, bool) { calls++; return "value", true }},
		{"unreached", func() (string, bool) { calls++; return "other", true }},
	})

	assert.Equal(t, "value", got)
	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), `"strategy":"hit"`)
	assert.Contains(t, buf.String(), `"component":"extract"`)
	assert.NotContains(t, buf.String(), "unreached")
}

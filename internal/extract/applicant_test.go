package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanApplicantName(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "company followed by address",
			raw:  "Acme Technologies Private Limited, 12 MG Road, Bengaluru, Karnataka, India",
			want: "Acme Technologies Private Limited",
		},
		{
			name: "abbreviated company suffix",
			raw:  "ACME ROBOTICS PVT LTD Plot No 45 Sector 18 Gurugram Haryana 122015 India",
			want: "ACME ROBOTICS PVT LTD",
		},
		{
			name: "address before company name",
			raw:  "Registered office: 5th Floor, Tower B, Acme Robotics Private Limited",
			want: "Acme Robotics Private Limited",
		},
		{
			name: "compact institution kept",
			raw:  "Innovation Centre, Manipal University",
			want: "Innovation Centre, Manipal University",
		},
		{
			name: "label prefix removed",
			raw:  "Applicant(s): Jane Doe",
			want: "Jane Doe",
		},
		{
			name: "no letters",
			raw:  "12 / 34",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CleanApplicantName(tt.raw))
		})
	}
}

func TestCompanyFromBlock_BrandReattached(t *testing.T) {
	e := NewDefault()

	assert.Equal(t, "ACME Robotics Private Limited", e.companyFromBlock("ACME 2 Robotics Private Limited"))
}

func TestResolveApplicant(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled block with name sub-label",
			text: `FORM 2
THE PATENTS ACT, 1970
APPLICANT(S)
Name: Acme Robotics Private Limited
Nationality: Indian
Address: 12 MG Road, Bengaluru
The following specification particularly describes the invention.`,
			want: "Acme Robotics Private Limited",
		},
		{
			name: "name and address columns",
			text: `1. NAME AND ADDRESS OF THE APPLICANT
Name Nationality Address
Acme Robotics Private Limited Indian 12 MG Road Bengaluru
2. TITLE OF THE INVENTION`,
			want: "Acme Robotics Private Limited",
		},
		{
			name: "nothing to resolve",
			text: "A method of pumping water.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ResolveApplicant(tt.text))
		})
	}
}

func TestApplicantFromTables(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name   string
		tables [][]Table
		want   string
	}{
		{
			name:   "inline applicant cell",
			tables: [][]Table{{{{"Applicant", "Acme Robotics Private Limited"}}}},
			want:   "Acme Robotics Private Limited",
		},
		{
			name:   "key cell with value in next cell",
			tables: [][]Table{{{{"Name:", "Jane Doe"}}}},
			want:   "Jane Doe",
		},
		{
			name:   "header only",
			tables: [][]Table{{{{"Applicant", "Nationality"}}}},
			want:   "",
		},
		{
			name:   "no tables",
			tables: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ApplicantFromTables(tt.tables))
		})
	}
}

func TestApplicantFromTables_PageLimit(t *testing.T) {
	e := NewDefault()

	tables := make([][]Table, e.Options().ApplicantTablePages+1)
	tables[len(tables)-1] = []Table{{{"Applicant", "Acme Robotics Private Limited"}}}

	assert.Empty(t, e.ApplicantFromTables(tables))
}

func TestBestSuffixCandidate(t *testing.T) {
	tests := []struct {
		name  string
		cands []suffixCandidate
		want  string
		ok    bool
	}{
		{name: "none", cands: nil, want: "", ok: false},
		{
			name: "fewer stray tokens wins",
			cands: []suffixCandidate{
				{name: "Road Acme Limited", penalty: 1, words: 3},
				{name: "Acme Robotics Private Limited", penalty: 0, words: 4},
			},
			want: "Acme Robotics Private Limited",
			ok:   true,
		},
		{
			name: "fewer words on equal penalty",
			cands: []suffixCandidate{
				{name: "Acme Robotics Private Limited", words: 4},
				{name: "Acme Limited", words: 2},
			},
			want: "Acme Limited",
			ok:   true,
		},
		{
			name: "shorter text on equal words",
			cands: []suffixCandidate{
				{name: "Robotics Limited", words: 2},
				{name: "Acme Limited", words: 2},
			},
			want: "Acme Limited",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bestSuffixCandidate(tt.cands)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.name)
		})
	}
}

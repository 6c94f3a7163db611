package descriptions

import "sort"

// Tool names exposed over MCP.
const (
	ToolParseFER           = "fer_parse"
	ToolFormalRequirements = "fer_formal_requirements"
	ToolClaims             = "fer_claims"
	ToolPriorArtAbstract   = "fer_prior_art_abstract"
	ToolCoverSheet         = "fer_cover_sheet"
	ToolInspectDocument    = "fer_inspect_document"
	ToolServerInfo         = "fer_server_info"
)

// Tool descriptions with practical examples and use cases

const (
	// Report tools
	FERParseDescription = `Extract the header fields, cited prior art and objections from a First Examination Report (FER).

**When to use:** You have an Indian patent office FER as PDF or DOCX and need its structured content to draft a reply.

**Why it's useful:** Recovers the application number, filing date, dispatch date, applicant, title, controller and examiner names and the reply deadline, plus every D-labelled prior-art citation and each numbered objection with its statutory sections, claim ranges and cited documents.

**Examples:**
• Reply drafting: "Parse fer-202141012345.pdf and list the objections under Section 2(1)(j)"
• Docketing: "Get the reply deadline and application number from the FER in this folder"
• Citation review: "Which prior-art documents does objection 1 rely on?"

**Common workflows:**
1. Reply Preparation: Parse FER → Review objections → Fetch cited abstracts → Draft arguments
2. Docketing: Parse FER → Record deadline → Notify the responsible attorney

**Best practices:** Every field is always present; an empty value means the heuristic found nothing, not an error. Check "scanned" when most fields are empty.`

	FERFormalRequirementsDescription = `Reconstruct the PART-III formal requirements table of a FER.

**When to use:** You need the (category, remark) pairs the examiner listed under formal requirements, such as Form 1, Form 3, Power of Attorney or Format of Drawings.

**Why it's useful:** Rebuilds rows split across pages and continuation tables, maps category wording to a canonical vocabulary and de-duplicates repeated remarks. Documents without usable tables fall back to line-based parsing.

**Examples:**
• Compliance check: "Which forms does the examiner say are missing in fer.pdf?"
• Reply checklist: "List the formal objections so I can prepare the corrected forms"

**Common workflows:**
1. Formal Compliance: Extract rows → Prepare forms → Tick off each category in the reply

**Best practices:** A single "Formal Requirements" row carries the raw section text when no category could be recognised.`

	FERClaimsDescription = `Split an amended claims document into numbered claims.

**When to use:** You have the applicant's amended claim set (PDF or DOCX) and need each claim separately.

**Why it's useful:** Locates the claim block after "We Claim" or similar headings, stops before signature and enclosure text, and returns each claim with its number together with the overall claim range.

**Examples:**
• Mapping objections: "Split amended-claims.docx and show claim 1"
• Consistency check: "How many claims are in the amended set?"

**Best practices:** Combine with fer_parse to map objections to the claims they cite.`

	FERPriorArtAbstractDescription = `Recover the abstract of a cited prior-art document.

**When to use:** The FER cites D1, D2 and so on, and you have their PDFs and need a concise summary of each.

**Why it's useful:** Looks for an Abstract heading on the leading pages, scores candidate paragraphs when none is found, strips bibliographic noise and caps the length according to the active extraction profile.

**Examples:**
• Distinguishing art: "Get the abstract of D1.pdf so I can compare it with claim 1"

**Best practices:** Image-only scans are rejected; run fer_inspect_document to see whether a file has a text layer.`

	FERCoverSheetDescription = `Resolve the applicant, title, background and summary of a Complete Specification.

**When to use:** Preparing a cover sheet or reply header from the complete specification of the application.

**Why it's useful:** Reads the applicant from name and address blocks or tables, completes company suffixes, finds the title in tables or headings, and returns the background and summary sections without page furniture.

**Examples:**
• Reply header: "Get the applicant name and title from complete-spec.pdf"

**Best practices:** Tables on the first pages are searched first; DOCX files keep their table structure and usually give the cleanest result.`

	// Utility tools
	FERInspectDocumentDescription = `Report the structure of a PDF or DOCX file before extraction.

**When to use:** Deciding whether a document can be parsed, or diagnosing why an extraction came back empty.

**Why it's useful:** Reports format, size, page, table, image and character counts, whether the PDF is encrypted or scanned, its PDF version and whether it passes structural validation.

**Examples:**
• Triage: "Is d2.pdf a scanned document?"
• Troubleshooting: "Why did fer_parse return empty fields for this report?"

**Best practices:** A scanned document has images but fewer than 50 extractable characters per page.`

	FERServerInfoDescription = `Get server configuration, available tools and the documents in the working directory.

**When to use:** At the start of a session, or to check which directory, profile and size limit the server uses.

**Why it's useful:** Lists every tool with its parameters, the extraction profiles, cache state and the PDF and DOCX files the other tools can read.

**Best practices:** Paths returned here can be passed directly to the other tools.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	ToolParseFER:           FERParseDescription,
	ToolFormalRequirements: FERFormalRequirementsDescription,
	ToolClaims:             FERClaimsDescription,
	ToolPriorArtAbstract:   FERPriorArtAbstractDescription,
	ToolCoverSheet:         FERCoverSheetDescription,
	ToolInspectDocument:    FERInspectDocumentDescription,
	ToolServerInfo:         FERServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package extract

// ParseFerDocument extracts the header metadata, cited prior art and
// substantive objections of a First Examination Report. Every field of the
// result is populated even when nothing could be recognised.
func (e *Extractor) ParseFerDocument(doc Document) ParseResult {
	text := e.Normalize(doc.Text())
	res := NewParseResult()
	if text == "" {
		e.log.Debug().Msg("empty FER text")
		return res
	}

	meta := e.ExtractMetadata(text)
	res.ApplicationNo = meta.ApplicationNo
	res.FilingDate = meta.FilingDate
	res.FerDispatchDate = meta.FerDispatchDate
	res.Applicant = meta.Applicant
	res.Title = meta.Title
	res.ControllerName = meta.ControllerName
	res.ExaminerName = meta.ExaminerName
	res.ReplyDeadline = meta.ReplyDeadline

	res.PriorArts = e.ExtractPriorArts(text)

	observations := e.DetailedObservations(text)
	if observations == "" {
		e.log.Debug().Msg("detailed observations block not found, segmenting whole report")
		observations = text
	}
	res.Objections = e.splitObjections(observations, res.PriorArts)
	return res
}

// FormalRequirements reconstructs the PART-III rows of a FER.
func (e *Extractor) FormalRequirements(doc Document) []FormalRow {
	return e.ReconstructFormalRows(doc.Pages, doc.Tables)
}

// ParseCoverSheet resolves the applicant, title, background and summary of
// a Complete Specification.
func (e *Extractor) ParseCoverSheet(doc Document) CoverSheet {
	text := e.Normalize(doc.Text())
	if text == "" {
		return CoverSheet{}
	}
	background, summary := e.BackgroundAndSummary(text)
	return CoverSheet{
		Applicant:  e.resolveApplicant(text, doc.Tables),
		Title:      e.ExtractTitle(text, doc.Tables),
		Background: background,
		Summary:    summary,
	}
}

// ParseClaimsDocument splits the claim set of an amended-claims document.
func (e *Extractor) ParseClaimsDocument(doc Document) []ClaimBlock {
	return e.ParseClaims(doc.Text())
}

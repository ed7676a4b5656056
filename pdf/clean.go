package pdf

import "regexp"

// PDF text layers carry artifacts the chunker must never see: strikeout
// combining marks, page numbers, running headers, spaced-out letters, and
// broken hyphenation. Each regex below removes one artifact class.
var (
	strikeoutRe   = regexp.MustCompile("[\u0336\u0337\u0338]")
	disallowedRe  = regexp.MustCompile(`[^\w\s.,;:!?\-'"()\[\]{}/@#$%&*+=<>|\n]`)
	spaceTabRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	camelSplitRe  = regexp.MustCompile(`([a-z])([A-Z])`)
	digitSplitRe  = regexp.MustCompile(`([0-9])([A-Z])`)
	pageNumberRe  = regexp.MustCompile(`\n\d+\s*\n`)
	runningHeadRe = regexp.MustCompile(`\n[A-Z\s]{3,50}\n`)
	splitLetterRe = regexp.MustCompile(`\b([a-z])\s+([a-z])\b`)
	brokenDashRe  = regexp.MustCompile(`([a-z])\s*-\s*([a-z])`)
	dotRunRe      = regexp.MustCompile(`[.]{3,}`)
	dashRunRe     = regexp.MustCompile(`[-]{3,}`)
)

// CleanPageText normalizes the raw text of one PDF page.
func CleanPageText(text string) string {
	text = strikeoutRe.ReplaceAllString(text, "")
	text = disallowedRe.ReplaceAllString(text, "")
	text = spaceTabRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	// Words run together where the PDF dropped a space.
	text = camelSplitRe.ReplaceAllString(text, "$1 $2")
	text = digitSplitRe.ReplaceAllString(text, "$1 $2")

	// Page numbers and all-caps running headers on their own lines.
	text = pageNumberRe.ReplaceAllString(text, "\n")
	text = runningHeadRe.ReplaceAllString(text, "\n")

	// Letters spaced out by the extractor, and hyphenation split across
	// a line break.
	text = splitLetterRe.ReplaceAllString(text, "$1$2")
	text = brokenDashRe.ReplaceAllString(text, "$1-$2")

	text = dotRunRe.ReplaceAllString(text, "...")
	text = dashRunRe.ReplaceAllString(text, "---")
	return text
}

// Package harvest provides a universal content scraper. It extracts
// structured content (articles, book chapters, transcripts) from arbitrary
// websites and PDF documents without site-specific configuration: pages are
// classified as static or JavaScript-rendered, article links are discovered
// through layered heuristics, main content is located by a strategy cascade
// with quality scoring, and PDFs are segmented into chapter- or size-based
// chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, pdf/, sqlite/).
package harvest

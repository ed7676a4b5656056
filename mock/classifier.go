package mock

import "github.com/fletchka/harvest"

var _ harvest.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of harvest.Classifier.
type Classifier struct {
	ClassifyFn func(html string, pageURL string) harvest.ArchitectureProfile
}

func (c *Classifier) Classify(html string, pageURL string) harvest.ArchitectureProfile {
	return c.ClassifyFn(html, pageURL)
}

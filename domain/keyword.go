package domain

import (
	"strings"
)

// Placeholder is the reserved token representing "no value".  It is never a
// valid author or keyword.
const Placeholder = "(blank)"

// Keyword is an annotated keyword node of the bipartite graph.
type Keyword struct {
	Text      string
	Weight    float64
	TopicPath string // Colon-delimited path, e.g. "veterinary:animal-culture:agriculture".
}

// Topic returns the topic label, which is the first colon-delimited segment of
// the topic path.
func (kw Keyword) Topic() string {
	return TopicFromPath(kw.TopicPath)
}

// TopicFromPath extracts the leading segment of a colon-delimited topic path.
func TopicFromPath(topicPath string) string {
	if i := strings.Index(topicPath, ":"); i >= 0 {
		return strings.TrimSpace(topicPath[0:i])
	}
	return strings.TrimSpace(topicPath)
}

// Keywords is a lookup table of annotated keywords by text.
type Keywords map[string]Keyword

// Get returns the annotation for the named keyword.
func (kws Keywords) Get(text string) (Keyword, bool) {
	kw, ok := kws[text]
	return kw, ok
}

// Topic returns the topic label of the named keyword, or "" if unannotated.
func (kws Keywords) Topic(text string) string {
	if kw, ok := kws[text]; ok {
		return kw.Topic()
	}
	return ""
}

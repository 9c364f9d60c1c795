package domain

// CategoryIndex is a subdomain's controlled vocabulary of category keys plus the
// hand-maintained side tables keyed by it. Subtopic slugs are descriptive and
// are not guaranteed to name registered topics.
type CategoryIndex struct {
	Categories []string            `json:"categories" yaml:"categories"`
	Priorities map[string]string   `json:"priorities" yaml:"priorities"`
	Subtopics  map[string][]string `json:"subtopics" yaml:"subtopics"`
}

// Priority returns the priority classification for a category key.
func (c *CategoryIndex) Priority(key string) (string, bool) {
	if c == nil || c.Priorities == nil {
		return "", false
	}
	p, ok := c.Priorities[key]
	return p, ok
}

// ByPriority groups category keys by their priority value, preserving the
// canonical list order inside each group. Keys without a priority are omitted.
func (c *CategoryIndex) ByPriority() map[string][]string {
	grouped := make(map[string][]string)
	if c == nil {
		return grouped
	}
	for _, key := range c.Categories {
		if p, ok := c.Priorities[key]; ok {
			grouped[p] = append(grouped[p], key)
		}
	}
	return grouped
}

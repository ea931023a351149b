package domain

// Word is a secret word candidate
type Word struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// IsEmpty reports whether w is the "no round active" sentinel
func (w Word) IsEmpty() bool {
	return w.Term == "" && w.Definition == ""
}

// Category is a named, ordered list of words
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Words []Word `json:"words"`
}

// CategorySummary is what the setup screen lists for a category
type CategorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WordCount int    `json:"wordCount"`
}

// Summary returns the category without its words
func (c Category) Summary() CategorySummary {
	return CategorySummary{
		ID:        c.ID,
		Name:      c.Name,
		WordCount: len(c.Words),
	}
}

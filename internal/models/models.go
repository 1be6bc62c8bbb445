// ABOUTME: Core data models for articles, categories, and categorization reports.
// ABOUTME: Provides the typed article table and report structures shared across the pipeline.
package models

// Article is one row of the input table. Identity is ArticleID; titles need
// not be unique. Metadata carries any extra input columns through unchanged.
type Article struct {
	ID       string
	Title    string
	Metadata map[string]string
}

// CategoryReport is one named category in the exported report.
type CategoryReport struct {
	Name       string   `json:"name"`
	ArticleIDs []string `json:"article_ids"`
	Titles     []string `json:"titles"`
}

// UncategorizedArticle is a noise-labeled article in the exported report.
type UncategorizedArticle struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
}

// Report is the persisted categorization artifact. Every article appears in
// exactly one of the two partitions.
type Report struct {
	Categories    []CategoryReport       `json:"categories"`
	Uncategorized []UncategorizedArticle `json:"uncategorized"`
}

// LoadedArticle is the {id, title} pair returned by the load operation.
type LoadedArticle struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
}

// LoadResult is the structured result of the load operation. Count is the
// total number of rows in the file, independent of the requested limit.
type LoadResult struct {
	Count    int             `json:"count"`
	Articles []LoadedArticle `json:"articles"`
}

// SearchMatch is one ranked nearest-neighbor result.
type SearchMatch struct {
	ArticleID string            `json:"article_id"`
	Title     string            `json:"title"`
	Metadata  map[string]string `json:"metadata"`
	Distance  float64           `json:"distance"`
}

// SearchResult is the structured result of the search operation, ranked by
// ascending distance.
type SearchResult struct {
	Query   string        `json:"query"`
	Results []SearchMatch `json:"results"`
}

// Summary is the structured success result of a categorize run.
type Summary struct {
	Success            bool   `json:"success"`
	TotalArticles      int    `json:"total_articles"`
	CategoriesCount    int    `json:"categories_count"`
	UncategorizedCount int    `json:"uncategorized_count"`
	OutputFile         string `json:"output_file"`
}

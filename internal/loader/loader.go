// ABOUTME: Tab-delimited article file loading into the typed in-memory table.
// ABOUTME: Resolves title and id columns, generating sequential ids when absent.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/CodeAKrome/NewsKitten/internal/models"
)

// ErrNoArticles signals a readable input file with a header but zero data
// rows. Callers treat this as a soft, reportable condition.
var ErrNoArticles = errors.New("no articles found in input file")

// idColumns lists accepted id-bearing header names, in precedence order.
var idColumns = []string{"article_id", "id"}

// LoadArticles parses a tab-delimited file into an ordered article table,
// preserving file order. The header row must contain a title column; an
// article_id (or id) column is used when present, otherwise sequential ids
// are generated in file order. All other columns pass through as metadata.
func LoadArticles(path string) ([]models.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoArticles)
	}

	header := rows[0]
	titleIdx := -1
	idIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "title") {
			titleIdx = i
			break
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("%s: missing required title column", path)
	}
	for _, candidate := range idColumns {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				idIdx = i
				break
			}
		}
		if idIdx >= 0 {
			break
		}
	}

	articles := make([]models.Article, 0, len(rows)-1)
	for n, row := range rows[1:] {
		article := models.Article{Metadata: map[string]string{}}
		for i, value := range row {
			if i >= len(header) {
				break
			}
			switch i {
			case titleIdx:
				article.Title = value
			case idIdx:
				article.ID = value
			default:
				article.Metadata[strings.TrimSpace(header[i])] = value
			}
		}
		if article.ID == "" {
			article.ID = strconv.Itoa(n + 1)
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoArticles)
	}
	return articles, nil
}

// ABOUTME: Merges cluster assignments, names, and articles into the exported report.
// ABOUTME: Partitions the article set exactly into categorized and uncategorized entries.
package categorize

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/CodeAKrome/NewsKitten/internal/cluster"
	"github.com/CodeAKrome/NewsKitten/internal/models"
)

// BuildReport partitions articles into named categories and an uncategorized
// list. Articles whose label is noise, or whose label has no derived name,
// land in uncategorized. Every article appears exactly once. Categories are
// ordered by label; members keep input order.
func BuildReport(names map[int]string, articles []models.Article, labels []int) models.Report {
	report := models.Report{
		Categories:    []models.CategoryReport{},
		Uncategorized: []models.UncategorizedArticle{},
	}

	byLabel := map[int]*models.CategoryReport{}
	var ordered []int
	for i, article := range articles {
		label := labels[i]
		name, named := names[label]
		if label == cluster.Noise || !named {
			report.Uncategorized = append(report.Uncategorized, models.UncategorizedArticle{
				ArticleID: article.ID,
				Title:     article.Title,
			})
			continue
		}
		entry, ok := byLabel[label]
		if !ok {
			entry = &models.CategoryReport{Name: name}
			byLabel[label] = entry
			ordered = append(ordered, label)
		}
		entry.ArticleIDs = append(entry.ArticleIDs, article.ID)
		entry.Titles = append(entry.Titles, article.Title)
	}

	sort.Ints(ordered)
	for _, label := range ordered {
		report.Categories = append(report.Categories, *byLabel[label])
	}
	return report
}

// WriteReport persists the report as indented JSON at path.
func WriteReport(report models.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("categorize: marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("categorize: write report: %w", err)
	}
	return nil
}

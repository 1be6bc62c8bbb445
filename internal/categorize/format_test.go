// ABOUTME: Tests for report assembly and JSON export.
// ABOUTME: Checks the exact partition of articles and on-disk output shape.
package categorize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeAKrome/NewsKitten/internal/cluster"
	"github.com/CodeAKrome/NewsKitten/internal/models"
)

func TestBuildReportPartition(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "Fed Raises Rates"},
		{ID: "2", Title: "Rates Climb Higher"},
		{ID: "3", Title: "Rates Outlook Mixed"},
		{ID: "4", Title: "New Stadium Opens"},
		{ID: "5", Title: "Storm Hits Coast"},
	}
	labels := []int{0, 0, 0, cluster.Noise, cluster.Noise}
	names := map[int]string{0: "Rates"}

	report := BuildReport(names, articles, labels)

	if len(report.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(report.Categories))
	}
	cat := report.Categories[0]
	if cat.Name != "Rates" {
		t.Errorf("unexpected category name %q", cat.Name)
	}
	if len(cat.ArticleIDs) != 3 || cat.ArticleIDs[0] != "1" || cat.ArticleIDs[2] != "3" {
		t.Errorf("unexpected article ids %v", cat.ArticleIDs)
	}
	if len(cat.Titles) != 3 {
		t.Errorf("expected 3 titles, got %d", len(cat.Titles))
	}
	if len(report.Uncategorized) != 2 {
		t.Fatalf("expected 2 uncategorized, got %d", len(report.Uncategorized))
	}
	if report.Uncategorized[0].ArticleID != "4" || report.Uncategorized[1].ArticleID != "5" {
		t.Errorf("unexpected uncategorized %v", report.Uncategorized)
	}

	seen := map[string]int{}
	for _, c := range report.Categories {
		for _, id := range c.ArticleIDs {
			seen[id]++
		}
	}
	for _, u := range report.Uncategorized {
		seen[u.ArticleID]++
	}
	for _, a := range articles {
		if seen[a.ID] != 1 {
			t.Errorf("article %s appears %d times in the report", a.ID, seen[a.ID])
		}
	}
}

func TestBuildReportUnnamedLabelGoesUncategorized(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "One"},
		{ID: "2", Title: "Two"},
	}
	// Label 0 exists but was not named (cluster below minimum size).
	report := BuildReport(map[int]string{}, articles, []int{0, 0})
	if len(report.Categories) != 0 {
		t.Errorf("unnamed label must not produce a category, got %v", report.Categories)
	}
	if len(report.Uncategorized) != 2 {
		t.Errorf("expected both articles uncategorized, got %d", len(report.Uncategorized))
	}
}

func TestBuildReportCategoryOrder(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "B One"},
		{ID: "2", Title: "A One"},
		{ID: "3", Title: "B Two"},
		{ID: "4", Title: "A Two"},
	}
	labels := []int{1, 0, 1, 0}
	names := map[int]string{0: "Alpha", 1: "Beta"}

	report := BuildReport(names, articles, labels)
	if len(report.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(report.Categories))
	}
	if report.Categories[0].Name != "Alpha" || report.Categories[1].Name != "Beta" {
		t.Errorf("categories out of label order: %v", report.Categories)
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	report := BuildReport(nil, nil, nil)
	if report.Categories == nil || report.Uncategorized == nil {
		t.Error("empty report must keep non-nil slices for JSON arrays")
	}
}

func TestWriteReportRoundTrip(t *testing.T) {
	report := models.Report{
		Categories: []models.CategoryReport{
			{Name: "Rates", ArticleIDs: []string{"1"}, Titles: []string{"Fed Raises Rates"}},
		},
		Uncategorized: []models.UncategorizedArticle{
			{ArticleID: "2", Title: "Storm Hits Coast"},
		},
	}
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := WriteReport(report, path); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("output must end with a newline")
	}

	var back models.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(back.Categories) != 1 || back.Categories[0].Name != "Rates" {
		t.Errorf("unexpected categories after round trip: %v", back.Categories)
	}
	if len(back.Uncategorized) != 1 || back.Uncategorized[0].ArticleID != "2" {
		t.Errorf("unexpected uncategorized after round trip: %v", back.Uncategorized)
	}
}

func TestWriteReportBadPath(t *testing.T) {
	err := WriteReport(models.Report{}, filepath.Join(t.TempDir(), "missing", "categories.json"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}

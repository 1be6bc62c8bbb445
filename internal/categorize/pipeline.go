// ABOUTME: Orchestrates the categorize, load, and search operations shared by CLI and MCP.
// ABOUTME: Wires loader, embedder, vector store, clusterer, namer, and formatter end to end.
package categorize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CodeAKrome/NewsKitten/internal/cluster"
	"github.com/CodeAKrome/NewsKitten/internal/embeddings"
	"github.com/CodeAKrome/NewsKitten/internal/loader"
	"github.com/CodeAKrome/NewsKitten/internal/models"
	"github.com/CodeAKrome/NewsKitten/internal/store"
)

// Pipeline runs the categorization and search operations against one
// embedding backend and one named collection.
type Pipeline struct {
	embedder   embeddings.Embedder
	collection string
	logger     *slog.Logger
}

// NewPipeline builds a pipeline for the given embedder and collection name.
func NewPipeline(embedder embeddings.Embedder, collection string, logger *slog.Logger) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("categorize: embedder is required")
	}
	if collection == "" {
		return nil, fmt.Errorf("categorize: collection name is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{embedder: embedder, collection: collection, logger: logger}, nil
}

// CategorizeOptions are the parameters of one categorize run.
type CategorizeOptions struct {
	InputPath           string
	OutputPath          string
	MinClusterSize      int
	SimilarityThreshold float64
	PersistDir          string
}

// validate rejects invalid parameters before any stage runs.
func (o CategorizeOptions) validate() error {
	if o.InputPath == "" {
		return fmt.Errorf("categorize: input path is required")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("categorize: output path is required")
	}
	if o.MinClusterSize < 1 {
		return fmt.Errorf("categorize: min cluster size must be at least 1, got %d", o.MinClusterSize)
	}
	if o.SimilarityThreshold <= 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("categorize: similarity threshold must be in (0, 1], got %g", o.SimilarityThreshold)
	}
	if o.PersistDir == "" {
		return fmt.Errorf("categorize: persist dir is required")
	}
	return nil
}

// Categorize runs the full pipeline: load, embed, persist vectors, cluster,
// name, and export the report. Any stage error aborts the run; no partial
// results are persisted as success.
func (p *Pipeline) Categorize(ctx context.Context, opts CategorizeOptions) (models.Summary, error) {
	if err := opts.validate(); err != nil {
		return models.Summary{}, err
	}

	log := p.logger.With("run_id", uuid.NewString())
	log.Info("starting categorization", "input", opts.InputPath,
		"min_cluster_size", opts.MinClusterSize, "similarity_threshold", opts.SimilarityThreshold)

	articles, err := loader.LoadArticles(opts.InputPath)
	if err != nil {
		return models.Summary{}, err
	}
	log.Debug("loaded articles", "count", len(articles))

	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = a.Title
	}
	vectors, err := p.embedder.EmbedBatch(ctx, titles)
	if err != nil {
		return models.Summary{}, err
	}
	log.Debug("generated embeddings", "count", len(vectors), "dimensions", p.embedder.Dimensions())

	st, err := store.Open(opts.PersistDir, p.collection)
	if err != nil {
		return models.Summary{}, err
	}
	defer func() { _ = st.Close() }()

	records := make([]store.Record, len(articles))
	for i, a := range articles {
		records[i] = store.Record{
			ID:        a.ID,
			Document:  a.Title,
			Metadata:  a.Metadata,
			Embedding: vectors[i],
		}
	}
	if err := st.Upsert(ctx, records); err != nil {
		return models.Summary{}, err
	}
	log.Debug("persisted vectors", "collection", p.collection)

	// The externally tunable knob is similarity; DBSCAN works in distance.
	eps := 1 - opts.SimilarityThreshold
	labels, err := cluster.Cluster(vectors, opts.MinClusterSize, eps)
	if err != nil {
		return models.Summary{}, err
	}

	names := DeriveNames(articles, labels, opts.MinClusterSize)
	report := BuildReport(names, articles, labels)
	if err := WriteReport(report, opts.OutputPath); err != nil {
		return models.Summary{}, err
	}

	summary := models.Summary{
		Success:            true,
		TotalArticles:      len(articles),
		CategoriesCount:    len(report.Categories),
		UncategorizedCount: len(report.Uncategorized),
		OutputFile:         opts.OutputPath,
	}
	log.Info("categorization complete", "categories", summary.CategoriesCount,
		"uncategorized", summary.UncategorizedCount, "output", summary.OutputFile)
	return summary, nil
}

// Load reads the article table and returns the total row count plus the
// first limit articles in file order.
func (p *Pipeline) Load(ctx context.Context, inputPath string, limit int) (models.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return models.LoadResult{}, err
	}
	articles, err := loader.LoadArticles(inputPath)
	if err != nil {
		return models.LoadResult{}, err
	}

	if limit < 0 {
		limit = 0
	}
	if limit > len(articles) {
		limit = len(articles)
	}
	result := models.LoadResult{
		Count:    len(articles),
		Articles: make([]models.LoadedArticle, 0, limit),
	}
	for _, a := range articles[:limit] {
		result.Articles = append(result.Articles, models.LoadedArticle{ArticleID: a.ID, Title: a.Title})
	}
	return result, nil
}

// Search embeds the query text and returns the nResults nearest stored
// articles ranked by ascending distance. A persist dir with no prior
// categorize run fails with store.ErrCollectionNotFound.
func (p *Pipeline) Search(ctx context.Context, query, persistDir string, nResults int) (models.SearchResult, error) {
	if query == "" {
		return models.SearchResult{}, fmt.Errorf("categorize: search query is required")
	}
	if nResults < 1 {
		return models.SearchResult{}, fmt.Errorf("categorize: result count must be at least 1, got %d", nResults)
	}

	st, err := store.OpenExisting(persistDir, p.collection)
	if err != nil {
		return models.SearchResult{}, err
	}
	defer func() { _ = st.Close() }()

	queryVec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return models.SearchResult{}, err
	}

	matches, err := st.Query(ctx, queryVec, nResults)
	if err != nil {
		return models.SearchResult{}, err
	}

	result := models.SearchResult{Query: query, Results: make([]models.SearchMatch, 0, len(matches))}
	for _, m := range matches {
		result.Results = append(result.Results, models.SearchMatch{
			ArticleID: m.ID,
			Title:     m.Document,
			Metadata:  m.Metadata,
			Distance:  m.Distance,
		})
	}
	return result, nil
}

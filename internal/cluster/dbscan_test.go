// ABOUTME: Tests for DBSCAN clustering over cosine distance.
// ABOUTME: Covers label alignment, noise assignment, determinism, and parameter validation.
package cluster

import (
	"testing"
)

// Three near-identical directions, two unrelated ones.
func testVectors() [][]float32 {
	return [][]float32{
		{1, 0, 0},
		{0.99, 0.05, 0},
		{0.98, 0.08, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func TestClusterGroupsDenseRegion(t *testing.T) {
	labels, err := Cluster(testVectors(), 2, 0.25)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	if len(labels) != 5 {
		t.Fatalf("expected 5 labels, got %d", len(labels))
	}

	if labels[0] != 0 || labels[1] != 0 || labels[2] != 0 {
		t.Errorf("expected first three vectors in cluster 0, got %v", labels)
	}
	if labels[3] != Noise || labels[4] != Noise {
		t.Errorf("expected unrelated vectors as noise, got %v", labels)
	}
}

func TestClusterDeterministic(t *testing.T) {
	first, err := Cluster(testVectors(), 2, 0.25)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	second, err := Cluster(testVectors(), 2, 0.25)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("labels differ between identical runs at index %d", i)
		}
	}
}

func TestClusterDenseLabels(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0}, {0.99, 0.05, 0}, // cluster 0
		{0, 1, 0}, {0.05, 0.99, 0}, // cluster 1
		{0, 0, 1}, // noise
	}
	labels, err := Cluster(vectors, 2, 0.25)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}

	seen := map[int]bool{}
	maxLabel := -1
	for _, l := range labels {
		if l == Noise {
			continue
		}
		seen[l] = true
		if l > maxLabel {
			maxLabel = l
		}
	}
	for l := 0; l <= maxLabel; l++ {
		if !seen[l] {
			t.Errorf("label space has a gap at %d: %v", l, labels)
		}
	}
	if maxLabel != 1 {
		t.Errorf("expected 2 clusters, got max label %d", maxLabel)
	}
}

func TestClusterZeroEps(t *testing.T) {
	vectors := [][]float32{
		{1, 0}, {1, 0}, // identical
		{0, 1},
	}
	labels, err := Cluster(vectors, 2, 0)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	if labels[0] != 0 || labels[1] != 0 {
		t.Errorf("identical vectors must cluster at eps 0, got %v", labels)
	}
	if labels[2] != Noise {
		t.Errorf("distinct vector must be noise at eps 0, got %v", labels)
	}
}

func TestClusterMinPointsOne(t *testing.T) {
	labels, err := Cluster([][]float32{{1, 0}, {0, 1}}, 1, 0.1)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	// Every point is its own core point.
	if labels[0] != 0 || labels[1] != 1 {
		t.Errorf("expected singleton clusters, got %v", labels)
	}
}

func TestClusterEmptyInput(t *testing.T) {
	labels, err := Cluster(nil, 2, 0.25)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	if labels != nil {
		t.Errorf("expected nil labels for empty input, got %v", labels)
	}
}

func TestClusterInvalidParams(t *testing.T) {
	if _, err := Cluster(testVectors(), 0, 0.25); err == nil {
		t.Error("expected error for min group size below 1")
	}
	if _, err := Cluster(testVectors(), 2, -0.1); err == nil {
		t.Error("expected error for negative distance threshold")
	}
}

func TestClusterRaggedDimensions(t *testing.T) {
	if _, err := Cluster([][]float32{{1, 0}, {1, 0, 0}}, 2, 0.25); err == nil {
		t.Error("expected error for inconsistent vector dimensions")
	}
}

func TestClusterTightGroupExcludesOutlier(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.995, 0.05, 0},
		{0.99, 0.1, 0},
		{0.9, 0.4, 0.1},
	}
	labels, err := Cluster(vectors, 3, 0.02)
	if err != nil {
		t.Fatalf("Cluster error: %v", err)
	}
	if labels[0] != 0 || labels[1] != 0 || labels[2] != 0 {
		t.Errorf("expected tight group in cluster 0, got %v", labels)
	}
	// The far point is outside eps of every group member.
	if labels[3] != Noise {
		t.Errorf("expected far point as noise, got %v", labels)
	}
}

// ABOUTME: Density-based clustering (DBSCAN) over cosine distance.
// ABOUTME: Produces index-aligned labels, dense from 0 in discovery order, with -1 for noise.
package cluster

import (
	"fmt"

	"github.com/CodeAKrome/NewsKitten/internal/vector"
)

// Noise is the label for points not reachable from any core point.
const Noise = -1

const unvisited = -2

// Cluster runs DBSCAN over the vectors: two points connect when their cosine
// distance is at most eps, a point is core when it has at least minPoints
// connected neighbors (itself included), and clusters are core points plus
// their directly-connected neighbors. Labels are index-aligned with the
// input, dense from 0 in discovery order, with Noise for unassigned points.
// The ascending scan and FIFO expansion make the assignment deterministic.
func Cluster(vectors [][]float32, minPoints int, eps float64) ([]int, error) {
	if minPoints < 1 {
		return nil, fmt.Errorf("cluster: min group size must be at least 1, got %d", minPoints)
	}
	if eps < 0 {
		return nil, fmt.Errorf("cluster: distance threshold must be non-negative, got %g", eps)
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("cluster: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	labels := make([]int, len(vectors))
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for i := range vectors {
		if labels[i] != unvisited {
			continue
		}
		neighbors, err := neighborsOf(vectors, i, eps)
		if err != nil {
			return nil, err
		}
		if len(neighbors) < minPoints {
			labels[i] = Noise
			continue
		}

		labels[i] = next
		// FIFO seed expansion: grow the cluster through every core point.
		queue := append([]int(nil), neighbors...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if labels[j] == Noise {
				labels[j] = next // border point adopted by the cluster
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = next
			reach, err := neighborsOf(vectors, j, eps)
			if err != nil {
				return nil, err
			}
			if len(reach) >= minPoints {
				queue = append(queue, reach...)
			}
		}
		next++
	}

	return labels, nil
}

// neighborsOf returns indexes within eps of point i, including i itself,
// in ascending order.
func neighborsOf(vectors [][]float32, i int, eps float64) ([]int, error) {
	var out []int
	for j := range vectors {
		if j == i {
			// Self-distance is 0 by definition; avoid float noise at eps=0.
			out = append(out, j)
			continue
		}
		d, err := vector.CosineDistance(vectors[i], vectors[j])
		if err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
		if d <= eps {
			out = append(out, j)
		}
	}
	return out, nil
}

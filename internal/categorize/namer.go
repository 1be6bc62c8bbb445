// ABOUTME: Derives display names for clusters from terms shared across member titles.
// ABOUTME: Ranks terms by how many member titles contain them, stopwords excluded.
package categorize

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/CodeAKrome/NewsKitten/internal/cluster"
	"github.com/CodeAKrome/NewsKitten/internal/models"
)

// maxNameTerms caps how many salient terms form a category name.
const maxNameTerms = 3

// stopwords are excluded from salience ranking.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "be": true,
	"but": true, "by": true, "for": true, "from": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "new": true,
	"of": true, "on": true, "or": true, "over": true, "the": true,
	"to": true, "up": true, "with": true,
}

// DeriveNames maps each non-noise label to a short display name built from
// the most widely shared significant terms among its member titles. Ties in
// salience break by first occurrence across members in member order.
// Clusters with fewer members than minGroupSize are dropped; their members
// fall back to the uncategorized partition. A cluster with no extractable
// terms gets a generic "Cluster N" name instead of failing.
func DeriveNames(articles []models.Article, labels []int, minGroupSize int) map[int]string {
	members := map[int][]string{}
	for i, label := range labels {
		if label == cluster.Noise {
			continue
		}
		members[label] = append(members[label], articles[i].Title)
	}

	names := make(map[int]string, len(members))
	for label, titles := range members {
		if len(titles) < minGroupSize {
			continue
		}
		name := nameFromTitles(titles)
		if name == "" {
			name = fmt.Sprintf("Cluster %d", label+1)
		}
		names[label] = name
	}
	return names
}

// nameFromTitles picks the top shared terms across titles. Salience is the
// number of distinct titles containing the term.
func nameFromTitles(titles []string) string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	for _, title := range titles {
		seen := map[string]bool{}
		for _, term := range titleTerms(title) {
			if seen[term] {
				continue
			}
			seen[term] = true
			counts[term]++
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = order
				order++
			}
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > maxNameTerms {
		terms = terms[:maxNameTerms]
	}
	for i, term := range terms {
		terms[i] = titleCase(term)
	}
	return strings.Join(terms, " ")
}

// titleTerms extracts significant lowercase terms from a title.
func titleTerms(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var out []string
	for _, f := range fields {
		if len(f) < 3 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// titleCase upper-cases the first rune of a term.
func titleCase(term string) string {
	r := []rune(term)
	if len(r) == 0 {
		return term
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

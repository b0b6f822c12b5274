// Package relevance holds the pure scoring logic and the data tables it runs
// on: stop words, synonym expansions, field weights, and the image-match
// bonus rules. Tables are injected values, not package state, so tests can
// substitute alternates.
package relevance

import "strings"

// StopWords is the set of tokens stripped from a query before term scoring.
type StopWords map[string]struct{}

// DefaultStopWords covers articles, pronouns, auxiliaries, and the common
// search verbs shoppers type ("find", "show", "want", ...).
func DefaultStopWords() StopWords {
	words := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
		"been", "being", "have", "has", "had", "do", "does", "did", "will",
		"would", "should", "could", "may", "might", "must", "can", "this",
		"that", "these", "those", "i", "you", "he", "she", "it", "we", "they",
		"me", "him", "her", "us", "them", "my", "your", "his", "its", "our",
		"their", "show", "if", "got", "any", "some", "find", "search", "looking",
		"want", "need", "buy", "please", "get",
	}
	set := make(StopWords, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Terms lowercases and whitespace-tokenizes the query, dropping stop words.
// Token order follows the query.
func (s StopWords) Terms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, stopped := s[w]; !stopped {
			terms = append(terms, w)
		}
	}
	return terms
}

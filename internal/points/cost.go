// Package points implements the publishing cost calculator and the reward
// policy that drive the points economy. Everything in this package is pure:
// no persistence access, no side effects.
package points

import (
	"strings"
)

// Publishing cost parameters.
const (
	// DefaultCost applies to categories outside the known set.
	DefaultCost = 5
	// WordLimit is the word count above which length surcharges accrue.
	WordLimit = 300
	// WordCostMultiplier is charged per WordLimit words beyond the first.
	WordCostMultiplier = 2
)

// baseCosts maps each category to its base publishing cost.
var baseCosts = map[string]int{
	"poetry":  5,
	"story":   10,
	"essay":   8,
	"theater": 12,
	"letter":  5,
	"journal": 3,
}

// BaseCost returns the base publishing cost for a category.
// Unknown categories fall back to DefaultCost.
func BaseCost(category string) int {
	if c, ok := baseCosts[category]; ok {
		return c
	}
	return DefaultCost
}

// Cost computes the points cost of publishing content in the given category.
// The result is non-negative and non-decreasing in word count.
func Cost(category, content string) int {
	cost := BaseCost(category)
	words := WordCount(content)
	if words > WordLimit {
		cost += (words / WordLimit) * WordCostMultiplier
	}
	return cost
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

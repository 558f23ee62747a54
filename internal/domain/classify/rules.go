package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smartsite/task-api/internal/domain"
)

// Common errors
var (
	ErrNoDefaultCategory = errors.New("default category must be set")
	ErrNoDefaultPriority = errors.New("default priority must be set")
	ErrEmptyKeywords     = errors.New("rule must have at least one keyword")
)

// CategoryRule maps a set of keywords to a category.
type CategoryRule struct {
	Category domain.Category
	Keywords []string
}

// PriorityRule maps a set of keywords to a priority.
type PriorityRule struct {
	Priority domain.Priority
	Keywords []string
}

// Rules is the full keyword table used by the classifier.
// CategoryRules and PriorityRules are ordered: earlier rules take precedence.
type Rules struct {
	CategoryRules   []CategoryRule
	DefaultCategory domain.Category

	PriorityRules   []PriorityRule
	DefaultPriority domain.Priority

	// Actions lists the suggested follow-ups for each category.
	// A category with no entry gets an empty list.
	Actions map[domain.Category][]string
}

// DefaultRules returns the standard keyword table.
func DefaultRules() Rules {
	return Rules{
		CategoryRules: []CategoryRule{
			{Category: domain.CategoryScheduling, Keywords: []string{"meeting", "schedule"}},
			{Category: domain.CategoryTechnical, Keywords: []string{"bug", "fix"}},
			{Category: domain.CategoryFinance, Keywords: []string{"invoice", "payment"}},
		},
		DefaultCategory: domain.CategoryGeneral,

		PriorityRules: []PriorityRule{
			{Priority: domain.PriorityHigh, Keywords: []string{"urgent", "asap"}},
			{Priority: domain.PriorityMedium, Keywords: []string{"soon"}},
		},
		DefaultPriority: domain.PriorityLow,

		Actions: map[domain.Category][]string{
			domain.CategoryScheduling: {"Block calendar", "Send invite"},
			domain.CategoryTechnical:  {"Investigate issue"},
			domain.CategoryFinance:    {"Check invoice"},
			domain.CategoryGeneral:    {},
		},
	}
}

// Validate checks that the rule table is usable.
func (r Rules) Validate() error {
	if !r.DefaultCategory.IsValid() {
		return ErrNoDefaultCategory
	}
	if !r.DefaultPriority.IsValid() {
		return ErrNoDefaultPriority
	}

	for i, rule := range r.CategoryRules {
		if !rule.Category.IsValid() {
			return fmt.Errorf("category rule %d: %w", i, domain.ErrInvalidCategory)
		}
		if !hasKeyword(rule.Keywords) {
			return fmt.Errorf("category rule %d: %w", i, ErrEmptyKeywords)
		}
	}

	for i, rule := range r.PriorityRules {
		if !rule.Priority.IsValid() {
			return fmt.Errorf("priority rule %d: %w", i, domain.ErrInvalidPriority)
		}
		if !hasKeyword(rule.Keywords) {
			return fmt.Errorf("priority rule %d: %w", i, ErrEmptyKeywords)
		}
	}

	for category := range r.Actions {
		if !category.IsValid() {
			return fmt.Errorf("actions for %q: %w", category, domain.ErrInvalidCategory)
		}
	}

	return nil
}

// normalized returns a copy of r with every keyword lower-cased, so matching
// against lower-cased text is case-insensitive.
func (r Rules) normalized() Rules {
	out := Rules{
		DefaultCategory: r.DefaultCategory,
		DefaultPriority: r.DefaultPriority,
		Actions:         make(map[domain.Category][]string, len(r.Actions)),
	}

	for _, rule := range r.CategoryRules {
		out.CategoryRules = append(out.CategoryRules, CategoryRule{
			Category: rule.Category,
			Keywords: lowerAll(rule.Keywords),
		})
	}
	for _, rule := range r.PriorityRules {
		out.PriorityRules = append(out.PriorityRules, PriorityRule{
			Priority: rule.Priority,
			Keywords: lowerAll(rule.Keywords),
		})
	}
	for category, actions := range r.Actions {
		out.Actions[category] = append([]string{}, actions...)
	}

	return out
}

func hasKeyword(keywords []string) bool {
	for _, k := range keywords {
		if k != "" {
			return true
		}
	}
	return false
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		out = append(out, strings.ToLower(k))
	}
	return out
}

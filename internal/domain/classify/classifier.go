package classify

import (
	"strings"

	"github.com/smartsite/task-api/internal/domain"
)

// Result is the outcome of classifying one description.
type Result struct {
	Category         domain.Category
	Priority         domain.Priority
	SuggestedActions []string
}

// Classifier assigns a category, priority and suggested actions to text.
type Classifier interface {
	// Classify never fails; unmatched text gets the default category and
	// priority. The returned action slice is owned by the caller.
	Classify(text string) Result
}

// keywordClassifier is the standard implementation of Classifier.
type keywordClassifier struct {
	rules Rules
}

// NewDefaultClassifier creates a classifier using DefaultRules.
func NewDefaultClassifier() Classifier {
	return &keywordClassifier{rules: DefaultRules().normalized()}
}

// NewClassifier creates a classifier with a custom rule table.
// Returns an error if the rules are not valid.
func NewClassifier(rules Rules) (Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &keywordClassifier{rules: rules.normalized()}, nil
}

// Classify implements Classifier.
func (c *keywordClassifier) Classify(text string) Result {
	lowered := strings.ToLower(text)

	category := c.rules.DefaultCategory
	for _, rule := range c.rules.CategoryRules {
		if containsAny(lowered, rule.Keywords) {
			category = rule.Category
			break
		}
	}

	priority := c.rules.DefaultPriority
	for _, rule := range c.rules.PriorityRules {
		if containsAny(lowered, rule.Keywords) {
			priority = rule.Priority
			break
		}
	}

	return Result{
		Category:         category,
		Priority:         priority,
		SuggestedActions: append([]string{}, c.rules.Actions[category]...),
	}
}

// Classify runs the default classifier over text.
func Classify(text string) Result {
	return defaultClassifier.Classify(text)
}

var defaultClassifier = NewDefaultClassifier()

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

package legal

import (
	"regexp"
	"strings"
)

// Category is the coarse legal topic assigned to a query.
type Category string

const (
	CategoryGreeting             Category = "greeting"
	CategoryContract             Category = "contract"
	CategoryEmployment           Category = "employment"
	CategoryProperty             Category = "property"
	CategoryBusiness             Category = "business"
	CategoryIntellectualProperty Category = "intellectualProperty"
	CategoryFamily               Category = "family"
	CategoryCriminal             Category = "criminal"
	CategoryLegalAdviceMeta      Category = "legalAdviceMeta"
	CategoryNone                 Category = "none"
)

// Rule maps a keyword set to a category. Keywords match at the start of a word
// unless WholeWord is set, in which case the whole word must match.
type Rule struct {
	Category  Category
	Keywords  []string
	WholeWord bool

	pattern *regexp.Regexp
}

func (r Rule) matches(lowered string) bool {
	return r.pattern.MatchString(lowered)
}

// rules are evaluated in order and the first match wins, so a query mentioning
// both a contract and employment is a contract question.
var rules = compileRules([]Rule{
	{Category: CategoryGreeting, Keywords: []string{"hello", "hi", "hey"}, WholeWord: true},
	{Category: CategoryContract, Keywords: []string{"contract", "agreement"}},
	{Category: CategoryEmployment, Keywords: []string{"employment", "job", "work", "employee", "fired", "terminated", "dismissal"}},
	{Category: CategoryProperty, Keywords: []string{"property", "real estate", "rent", "lease"}},
	{Category: CategoryBusiness, Keywords: []string{"business", "company", "startup", "llc", "corporation"}},
	{Category: CategoryIntellectualProperty, Keywords: []string{"patent", "trademark", "copyright", "intellectual property"}},
	{Category: CategoryFamily, Keywords: []string{"divorce", "custody", "child support", "family"}},
	{Category: CategoryCriminal, Keywords: []string{"criminal", "arrest", "charge", "police"}},
	{Category: CategoryLegalAdviceMeta, Keywords: []string{"legal advice", "lawyer", "attorney"}},
})

func compileRules(in []Rule) []Rule {
	out := make([]Rule, len(in))
	for i, r := range in {
		r.pattern = keywordPattern(r.Keywords, r.WholeWord)
		out[i] = r
	}
	return out
}

func keywordPattern(keywords []string, wholeWord bool) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	expr := `\b(?:` + strings.Join(quoted, "|") + `)`
	if wholeWord {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

// Rules returns the classification table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Classify returns the first category whose keywords appear in text, or CategoryNone.
func Classify(text string) Category {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lowered) {
			return r.Category
		}
	}
	return CategoryNone
}

package legal

import (
	"fmt"
	"strings"

	"github.com/ent0n29/lexassist/internal/conversation"
)

// ContinuityWindow is how many past exchanges are inspected when a query has no topic.
const ContinuityWindow = 3

type subCase struct {
	name     string
	pattern  Rule
	response string
}

type topic struct {
	generic  string
	subCases []subCase
}

func sub(name string, keywords []string, response string) subCase {
	return subCase{
		name:     name,
		pattern:  Rule{Keywords: keywords, pattern: keywordPattern(keywords, false)},
		response: response,
	}
}

var topics = map[Category]topic{
	CategoryGreeting:        {generic: greetingResponse},
	CategoryLegalAdviceMeta: {generic: legalAdviceResponse},
	CategoryContract: {
		generic: contractResponse,
		subCases: []subCase{
			sub("review", []string{"review", "check"}, contractReviewResponse),
			sub("signing", []string{"sign", "signing"}, contractSigningResponse),
		},
	},
	CategoryEmployment: {
		generic: employmentResponse,
		subCases: []subCase{
			sub("termination", []string{"fired", "terminated", "dismissal"}, employmentTerminationResponse),
			sub("wages", []string{"wage", "salary", "overtime", "pay"}, employmentWagesResponse),
			sub("discrimination", []string{"discriminat", "harass"}, employmentDiscriminationResponse),
		},
	},
	CategoryProperty: {
		generic: propertyResponse,
		subCases: []subCase{
			sub("tenancy", []string{"landlord", "tenant", "evict", "deposit"}, propertyTenancyResponse),
			sub("purchase", []string{"buy", "purchase", "closing"}, propertyPurchaseResponse),
		},
	},
	CategoryBusiness: {
		generic: businessResponse,
		subCases: []subCase{
			sub("formation", []string{"register", "incorporat", "form", "structure"}, businessFormationResponse),
			sub("tax", []string{"tax"}, businessTaxResponse),
		},
	},
	CategoryIntellectualProperty: {
		generic: ipResponse,
		subCases: []subCase{
			sub("patent", []string{"patent"}, ipPatentResponse),
			sub("trademark", []string{"trademark"}, ipTrademarkResponse),
		},
	},
	CategoryFamily: {
		generic: familyResponse,
		subCases: []subCase{
			sub("divorce", []string{"divorce"}, familyDivorceResponse),
			sub("custody", []string{"custody", "child support"}, familyCustodyResponse),
		},
	},
	CategoryCriminal: {
		generic: criminalResponse,
		subCases: []subCase{
			sub("arrest", []string{"arrest", "police"}, criminalArrestResponse),
		},
	},
}

// Respond returns the canned answer for category, refined by text. For
// CategoryNone it looks at the last ContinuityWindow exchanges of history to keep
// a running contract discussion going. It does not modify history.
func Respond(category Category, text string, history []conversation.Exchange) string {
	if category == CategoryNone {
		return respondWithoutTopic(text, history)
	}

	t, ok := topics[category]
	if !ok {
		return respondWithoutTopic(text, history)
	}

	lowered := strings.ToLower(text)
	for _, sc := range t.subCases {
		if sc.pattern.matches(lowered) {
			return sc.response
		}
	}
	return t.generic
}

// SubCase names the refinement Respond would pick, or "" for the generic answer.
func SubCase(category Category, text string) string {
	t, ok := topics[category]
	if !ok {
		return ""
	}
	lowered := strings.ToLower(text)
	for _, sc := range t.subCases {
		if sc.pattern.matches(lowered) {
			return sc.name
		}
	}
	return ""
}

func respondWithoutTopic(text string, history []conversation.Exchange) string {
	if len(history) > ContinuityWindow {
		history = history[len(history)-ContinuityWindow:]
	}
	var prior strings.Builder
	for _, e := range history {
		prior.WriteString(e.UserText)
		prior.WriteString(" ")
	}
	if strings.Contains(strings.ToLower(prior.String()), "contract") {
		return continuityContractResponse
	}
	return fmt.Sprintf(clarificationTemplate, text)
}

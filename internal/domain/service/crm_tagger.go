package service

import (
	"slices"
	"strings"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// CRMEngine names the CRM tag extraction engine.
const CRMEngine = "regex-v2"

// Confidence reported by the CRM tag analysis.
const (
	CRMConfidenceNoTags = 0.55
	CRMConfidenceTagged = 0.85
)

type crmTagRule struct {
	tag      string
	category string
	color    string
	keywords []string
}

// Two rules share the Allergies tag; only the first match is kept.
var crmTagRules = []crmTagRule{
	{tag: "VIP", category: "Status", color: "gold", keywords: []string{"vip", "important", "high profile"}},
	{tag: "Celeb", category: "Status", color: "gold", keywords: []string{"celebrity", "famous", "celeb guest"}},
	{tag: "Frequent Visitor", category: "Status", color: "gold", keywords: []string{"regular", "frequent", "loyal"}},
	{tag: "Birthday", category: "Milestone", color: "blue", keywords: []string{"birthday", "bday"}},
	{tag: "Anniversary", category: "Milestone", color: "blue", keywords: []string{"anniversary", "wedding"}},
	{tag: "Celebration", category: "Milestone", color: "blue", keywords: []string{"promotion", "celebrating"}},
	{tag: "No Shows", category: "Behavioral", color: "gray", keywords: []string{"no show", "no-show", "didn't show"}},
	{tag: "Allergies", category: "Health", color: "red", keywords: []string{"allergy", "allergic", "epipen", "anaphylaxis"}},
	{tag: "Dietary Restrictions", category: "Health", color: "red", keywords: []string{"dietary", "vegetarian", "vegan", "halal", "kosher", "gluten"}},
	{tag: "Allergies", category: "Health", color: "red", keywords: []string{"dairy-free", "lactose", "shellfish", "nut-free"}},
	{tag: "Accessibility", category: "Special Needs", color: "purple", keywords: []string{"wheelchair", "accessible", "disability"}},
	{tag: "Family", category: "Special Needs", color: "purple", keywords: []string{"high chair", "toddler", "baby", "infant"}},
}

// CRMTagger extracts CRM profile tags from special requests and dietary
// preferences.
type CRMTagger struct {
	rules []crmTagRule
}

// NewCRMTagger creates a CRMTagger over the built-in rule table.
func NewCRMTagger() *CRMTagger {
	return &CRMTagger{rules: crmTagRules}
}

// CombineCRMText joins the special request and dietary preference texts.
func CombineCRMText(specialRequest, dietaryPreferences string) string {
	return strings.TrimSpace(specialRequest + " " + dietaryPreferences)
}

// Extract returns every tag with at least one keyword in text, in rule order.
func (t *CRMTagger) Extract(text string) []model.CRMTag {
	found := make([]model.CRMTag, 0)
	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, rule := range t.rules {
		if seen[rule.tag] {
			continue
		}
		matched := slices.ContainsFunc(rule.keywords, func(kw string) bool {
			return strings.Contains(lower, kw)
		})
		if !matched {
			continue
		}
		found = append(found, model.CRMTag{Tag: rule.tag, Category: rule.category, Color: rule.color})
		seen[rule.tag] = true
	}

	return found
}

// CRMConfidence is the confidence of a CRM tag analysis.
func CRMConfidence(tags []model.CRMTag) float64 {
	if len(tags) == 0 {
		return CRMConfidenceNoTags
	}
	return CRMConfidenceTagged
}

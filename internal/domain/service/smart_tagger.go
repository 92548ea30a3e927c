package service

import (
	"strings"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

type smartTagRule struct {
	category string
	label    string
	color    string
	keywords []string
}

// Rule order is significant. The first keyword of a rule found in the text is
// reported as the match, and each label is emitted at most once.
var smartTagRules = []smartTagRule{
	// Dietary
	{category: "Dietary", label: "Vegan", color: "green", keywords: []string{"vegan"}},
	{category: "Dietary", label: "Vegetarian", color: "green", keywords: []string{"vegetarian", "veg "}},
	{category: "Dietary", label: "Gluten Free", color: "green", keywords: []string{"gluten-free", "gluten free", "celiac", "coeliac"}},
	{category: "Dietary", label: "Dairy Free", color: "green", keywords: []string{"dairy-free", "dairy free", "lactose"}},
	{category: "Dietary", label: "Nut Allergy", color: "green", keywords: []string{"nut allergy", "nut-free", "peanut"}},
	{category: "Dietary", label: "Allergy Alert", color: "red", keywords: []string{"allergy", "allergic", "epipen", "anaphylaxis"}},
	{category: "Dietary", label: "Halal", color: "green", keywords: []string{"halal"}},
	{category: "Dietary", label: "Kosher", color: "green", keywords: []string{"kosher"}},
	{category: "Dietary", label: "Jain", color: "green", keywords: []string{"jain"}},
	// Occasion
	{category: "Occasion", label: "Birthday", color: "purple", keywords: []string{"birthday", "bday", "b-day"}},
	{category: "Occasion", label: "Anniversary", color: "purple", keywords: []string{"anniversary", "anniv"}},
	{category: "Occasion", label: "Celebration", color: "purple", keywords: []string{"celebration", "celebrating"}},
	{category: "Occasion", label: "Date Night", color: "purple", keywords: []string{"date night", "romantic"}},
	{category: "Occasion", label: "Honeymoon", color: "purple", keywords: []string{"honeymoon"}},
	{category: "Occasion", label: "Proposal", color: "purple", keywords: []string{"proposal", "proposing", "engagement"}},
	// Seating
	{category: "Seating", label: "Window Seat", color: "blue", keywords: []string{"window seat", "window table"}},
	{category: "Seating", label: "Quiet Area", color: "blue", keywords: []string{"quiet", "private"}},
	{category: "Seating", label: "Booth", color: "blue", keywords: []string{"booth"}},
	{category: "Seating", label: "Outdoor", color: "blue", keywords: []string{"terrace", "patio", "outside", "outdoor"}},
	// Status
	{category: "Status", label: "VIP", color: "gold", keywords: []string{"vip", "important", "high profile"}},
	{category: "Status", label: "Celebrity", color: "gold", keywords: []string{"celebrity", "famous", "celeb guest"}},
	{category: "Accessibility", label: "Accessibility", color: "purple", keywords: []string{"wheelchair", "accessible", "disability"}},
	{category: "Family", label: "Family Needs", color: "purple", keywords: []string{"high chair", "toddler", "baby", "infant"}},
}

// SmartTagger extracts dietary, occasion, seating, status, accessibility and
// family tags from reservation notes.
type SmartTagger struct {
	rules []smartTagRule
}

// NewSmartTagger creates a SmartTagger over the built-in rule table.
func NewSmartTagger() *SmartTagger {
	return &SmartTagger{rules: smartTagRules}
}

// Extract scans text case-insensitively. Blank text yields an empty slice.
func (t *SmartTagger) Extract(text string) []model.SmartTag {
	found := make([]model.SmartTag, 0)
	if model.IsBlank(text) {
		return found
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, rule := range t.rules {
		if seen[rule.label] {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				found = append(found, model.SmartTag{
					Category: rule.category,
					Label:    rule.label,
					Color:    rule.color,
					Matched:  kw,
				})
				seen[rule.label] = true
				break
			}
		}
	}

	return found
}

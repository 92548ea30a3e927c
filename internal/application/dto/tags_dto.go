package dto

import "github.com/bibbank/guestrisk/internal/domain/model"

// AnalyzeTagsRequest is the input DTO for the AnalyzeTags use case.
type AnalyzeTagsRequest struct {
	TenantID           string `json:"-"`
	SpecialRequestText string `json:"special_request_text"`
	DietaryPreferences string `json:"dietary_preferences"`
	CustomerName       string `json:"customer_name"`
}

// TagResponse is one CRM tag.
type TagResponse struct {
	Tag      string `json:"tag"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

// AnalyzeTagsResponse is the output DTO of a tag analysis.
type AnalyzeTagsResponse struct {
	CustomerName string            `json:"customer_name"`
	Engine       string            `json:"engine"`
	Tags         []TagResponse     `json:"tags"`
	Sentiment    SentimentResponse `json:"sentiment"`
	Confidence   float64           `json:"confidence"`
}

// FromCRMTags maps domain tags to response DTOs. The result is never nil.
func FromCRMTags(tags []model.CRMTag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse(t))
	}
	return out
}

// DemoScenario is a named, ready-to-submit reservation.
type DemoScenario struct {
	Name        string         `json:"name"`
	Reservation PredictRequest `json:"reservation"`
}

// DemoScenariosResponse lists the demo scenarios.
type DemoScenariosResponse struct {
	Scenarios []DemoScenario `json:"scenarios"`
}

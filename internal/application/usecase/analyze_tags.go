package usecase

import (
	"context"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/internal/domain/service"
)

// AnalyzeTags extracts CRM tags and sentiment from special request text.
type AnalyzeTags struct {
	tagger    *service.CRMTagger
	sentiment port.SentimentAnalyzer
	metrics   port.PredictionMetrics
}

// NewAnalyzeTags creates a new AnalyzeTags use case.
func NewAnalyzeTags(tagger *service.CRMTagger, sentiment port.SentimentAnalyzer, metrics port.PredictionMetrics) *AnalyzeTags {
	return &AnalyzeTags{
		tagger:    tagger,
		sentiment: sentiment,
		metrics:   metrics,
	}
}

// Execute analyses the special request and dietary text together.
func (uc *AnalyzeTags) Execute(ctx context.Context, req dto.AnalyzeTagsRequest) dto.AnalyzeTagsResponse {
	text := service.CombineCRMText(req.SpecialRequestText, req.DietaryPreferences)
	tags := uc.tagger.Extract(text)

	uc.metrics.RecordTagAnalysis(ctx, len(tags))

	return dto.AnalyzeTagsResponse{
		CustomerName: req.CustomerName,
		Tags:         dto.FromCRMTags(tags),
		Sentiment:    dto.FromSentiment(uc.sentiment.Analyze(text)),
		Confidence:   service.CRMConfidence(tags),
		Engine:       service.CRMEngine,
	}
}

// Package features builds the calendar feature table: one row per day with the
// generic calendar parts, the Norwegian public holiday flags and the
// workday/freeday proximity features.
//
// The stages are typed so they can only run in order:
//
//	raw rows --Annotate--> AnnotatedTable --DeriveFreedays--> FeatureTable
package features

import (
	"context"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/dateparts"
	"github.com/julianstephens/datefeatures/internal/logger"
)

// DateRange returns every date from start to end inclusive, ascending.
func DateRange(start, end calendar.Date) ([]calendar.Date, error) {
	if end.Before(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	dates := make([]calendar.Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// Generate builds the full feature table for [start, end].
func Generate(start, end calendar.Date) (FeatureTable[dateparts.Parts], error) {
	return GenerateContext(context.Background(), start, end)
}

// GenerateContext is Generate with cancellation checked between stages.
func GenerateContext(ctx context.Context, start, end calendar.Date) (FeatureTable[dateparts.Parts], error) {
	dates, err := DateRange(start, end)
	if err != nil {
		return FeatureTable[dateparts.Parts]{}, err
	}
	logger.Debug("generating date features", "start", start, "end", end, "days", len(dates))

	parts := dateparts.ForAll(dates)
	if err := ctx.Err(); err != nil {
		return FeatureTable[dateparts.Parts]{}, err
	}

	annotated := AnnotateYears(parts, dateparts.DateOf)
	if err := ctx.Err(); err != nil {
		return FeatureTable[dateparts.Parts]{}, err
	}

	return DeriveFreedays(annotated)
}

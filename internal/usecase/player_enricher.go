package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/tennis-players/internal/domain/enrichment"
	"github.com/riskibarqy/tennis-players/internal/domain/player"
)

// PlayerEnricher looks player attributes up in an external knowledge base.
// Implementations never return bare errors; a failed lookup is a failed
// Result and the field simply stays unknown.
type PlayerEnricher interface {
	ResolveEntityID(ctx context.Context, name string) enrichment.Result[string]
	Country(ctx context.Context, entityID string) enrichment.Result[string]
	BirthDate(ctx context.Context, entityID string) enrichment.Result[time.Time]
	Height(ctx context.Context, entityID string) enrichment.Result[float64]
	Weight(ctx context.Context, entityID string) enrichment.Result[float64]
	Hand(ctx context.Context, entityID string) enrichment.Result[player.Hand]
	Socials(ctx context.Context, entityID string) enrichment.Result[enrichment.Socials]
	ProSince(ctx context.Context, entityID string) enrichment.Result[int]
}

type noopPlayerEnricher struct{}

func (noopPlayerEnricher) ResolveEntityID(context.Context, string) enrichment.Result[string] {
	return enrichment.Empty[string]()
}

func (noopPlayerEnricher) Country(context.Context, string) enrichment.Result[string] {
	return enrichment.Empty[string]()
}

func (noopPlayerEnricher) BirthDate(context.Context, string) enrichment.Result[time.Time] {
	return enrichment.Empty[time.Time]()
}

func (noopPlayerEnricher) Height(context.Context, string) enrichment.Result[float64] {
	return enrichment.Empty[float64]()
}

func (noopPlayerEnricher) Weight(context.Context, string) enrichment.Result[float64] {
	return enrichment.Empty[float64]()
}

func (noopPlayerEnricher) Hand(context.Context, string) enrichment.Result[player.Hand] {
	return enrichment.Empty[player.Hand]()
}

func (noopPlayerEnricher) Socials(context.Context, string) enrichment.Result[enrichment.Socials] {
	return enrichment.Empty[enrichment.Socials]()
}

func (noopPlayerEnricher) ProSince(context.Context, string) enrichment.Result[int] {
	return enrichment.Empty[int]()
}

// NewNoopPlayerEnricher is used when WIKIDATA_ENABLED=false.
func NewNoopPlayerEnricher() PlayerEnricher {
	return noopPlayerEnricher{}
}

// backfillScope selects which gaps a read tries to fill.
type backfillScope uint8

const (
	// backfillListing covers identity, country and birth date.
	backfillListing backfillScope = iota
	// backfillProfile covers every enrichable attribute.
	backfillProfile
)

// planBackfill queries the enricher for the gaps of item in scope and
// returns the fields it found. An existing identity link is never replaced
// by a name search.
func planBackfill(ctx context.Context, enricher PlayerEnricher, item player.Player, scope backfillScope) player.Patch {
	var patch player.Patch
	gaps := item.Gaps()

	entityID := item.WikidataID
	if gaps.Identity {
		id, ok := enricher.ResolveEntityID(ctx, item.SearchName()).Get()
		if !ok {
			return patch
		}
		entityID = id
		patch.WikidataID = &id
	}

	if gaps.Country {
		if v, ok := enricher.Country(ctx, entityID).Get(); ok {
			patch.Country = &v
		}
	}
	if gaps.BirthDate {
		if v, ok := enricher.BirthDate(ctx, entityID).Get(); ok {
			patch.BirthDate = &v
		}
	}
	if scope == backfillListing {
		return patch
	}

	if gaps.Height {
		if v, ok := enricher.Height(ctx, entityID).Get(); ok {
			patch.HeightCM = &v
		}
	}
	if gaps.Weight {
		if v, ok := enricher.Weight(ctx, entityID).Get(); ok {
			patch.WeightKG = &v
		}
	}
	if gaps.Hand {
		if v, ok := enricher.Hand(ctx, entityID).Get(); ok {
			patch.Hand = &v
		}
	}
	if gaps.Socials {
		if v, ok := enricher.Socials(ctx, entityID).Get(); ok {
			if v.Instagram != "" {
				patch.Instagram = &v.Instagram
			}
			if v.Facebook != "" {
				patch.Facebook = &v.Facebook
			}
			if v.XTwitter != "" {
				patch.XTwitter = &v.XTwitter
			}
		}
	}
	if gaps.ProSince {
		if v, ok := enricher.ProSince(ctx, entityID).Get(); ok {
			patch.ProSince = &v
		}
	}

	return patch
}

package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
)

// PlayerFields is a player as submitted by a client, before normalization.
// A nil field was not submitted.
type PlayerFields struct {
	FirstName  *string
	LastName   *string
	FullName   *string
	Hand       *string
	BirthDate  *string
	Country    *string
	Height     *string
	Weight     *string
	WikidataID *string
	Instagram  *string
	Facebook   *string
	XTwitter   *string
	ProSince   *int
}

type CreatePlayerInput struct {
	// ID is generated when empty.
	ID     string
	Fields PlayerFields
}

type UpdatePlayerInput struct {
	ID     string
	Fields PlayerFields
}

// toPatch normalizes free text: placeholders become unknown, hand labels map
// to R/L, countries to lower-case alpha-2, measures and dates are parsed.
func (f PlayerFields) toPatch() (player.Patch, error) {
	var patch player.Patch

	patch.FirstName = normalizedText(f.FirstName)
	patch.LastName = normalizedText(f.LastName)
	patch.FullName = normalizedText(f.FullName)
	patch.WikidataID = normalizedText(f.WikidataID)
	patch.Instagram = normalizedText(f.Instagram)
	patch.Facebook = normalizedText(f.Facebook)
	patch.XTwitter = normalizedText(f.XTwitter)

	if f.Hand != nil {
		hand := player.ParseHand(*f.Hand)
		patch.Hand = &hand
	}
	if f.Country != nil {
		country := player.NormalizeCountry(*f.Country)
		patch.Country = &country
	}
	if f.BirthDate != nil {
		born, err := player.ParseBirthDate(*f.BirthDate)
		if err != nil {
			return player.Patch{}, fmt.Errorf("%w: birth_date: %v", ErrInvalidInput, err)
		}
		patch.BirthDate = &born
	}
	if f.Height != nil {
		height, err := player.ParseMeasure(*f.Height)
		if err != nil {
			return player.Patch{}, fmt.Errorf("%w: height: %v", ErrInvalidInput, err)
		}
		patch.HeightCM = &height
	}
	if f.Weight != nil {
		weight, err := player.ParseMeasure(*f.Weight)
		if err != nil {
			return player.Patch{}, fmt.Errorf("%w: weight: %v", ErrInvalidInput, err)
		}
		patch.WeightKG = &weight
	}
	if f.ProSince != nil {
		if *f.ProSince < 0 {
			return player.Patch{}, fmt.Errorf("%w: pro_since must not be negative", ErrInvalidInput)
		}
		year := *f.ProSince
		patch.ProSince = &year
	}
	if patch.WikidataID != nil && *patch.WikidataID != "" {
		entityID := strings.ToUpper(*patch.WikidataID)
		patch.WikidataID = &entityID
	}

	return patch, nil
}

func normalizedText(v *string) *string {
	if v == nil {
		return nil
	}
	out := player.NormalizeText(*v)
	return &out
}

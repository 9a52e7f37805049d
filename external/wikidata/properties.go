package wikidata

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/tennis-players/internal/domain/enrichment"
	"github.com/riskibarqy/tennis-players/internal/domain/player"
)

// Property ids read by the getters.
const (
	PropertyOccupation      = "P106"
	PropertyCitizenship     = "P27"
	PropertyISOAlpha2       = "P297"
	PropertyISOAlpha3       = "P298"
	PropertyBirthDate       = "P569"
	PropertyHeight          = "P2048"
	PropertyMass            = "P2067"
	PropertyHandedness      = "P552"
	PropertyInstagram       = "P2003"
	PropertyFacebook        = "P2013"
	PropertyXUsername       = "P2002"
	PropertyWorkPeriodStart = "P2031"
)

// tennisOccupations are the profession items accepted as a tennis player.
var tennisOccupations = map[string]struct{}{
	"Q10833314": {},
	"Q13382460": {},
	"Q15100009": {},
}

var handByItem = map[string]player.Hand{
	"Q1310443": player.HandRight,
	"Q3029952": player.HandLeft,
}

const (
	instagramURL = "https://www.instagram.com/"
	facebookURL  = "https://www.facebook.com/"
	xURL         = "https://x.com/"
)

// ResolveEntityID searches name and accepts the hit only when it is a tennis
// player. Rejected hits are Empty.
func (c *Client) ResolveEntityID(ctx context.Context, name string) enrichment.Result[string] {
	return enrichment.Bind(c.SearchEntity(ctx, name), func(entityID string) enrichment.Result[string] {
		check := c.IsTennisPlayer(ctx, entityID)
		if check.Failed() {
			return enrichment.Failed[string](check.Err)
		}
		if ok, _ := check.Get(); !ok {
			c.logger.DebugContext(ctx, "wikidata search hit is not a tennis player", "name", name, "entity_id", entityID)
			return enrichment.Empty[string]()
		}
		return enrichment.Found(entityID)
	})
}

// IsTennisPlayer is Found(false) when the entity has occupations but none of
// them is an accepted tennis profession. Any non-deprecated match is enough,
// whatever its position in the occupation list.
func (c *Client) IsTennisPlayer(ctx context.Context, entityID string) enrichment.Result[bool] {
	res := c.FetchProperty(ctx, entityID, PropertyOccupation)
	switch {
	case res.Failed():
		return enrichment.Failed[bool](res.Err)
	case !res.Found():
		return enrichment.Found(false)
	}

	for _, claim := range res.Value {
		if claim.Rank == rankDeprecated {
			continue
		}
		if id, ok := claim.EntityID(); ok {
			if _, accepted := tennisOccupations[id]; accepted {
				return enrichment.Found(true)
			}
		}
	}
	return enrichment.Found(false)
}

// Country follows citizenship to the country item and reads its ISO code.
func (c *Client) Country(ctx context.Context, entityID string) enrichment.Result[string] {
	countryID := enrichment.Bind(c.FetchProperty(ctx, entityID, PropertyCitizenship), func(claims []Claim) enrichment.Result[string] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[string]()
		}
		id, ok := claim.EntityID()
		if !ok {
			return enrichment.Empty[string]()
		}
		return enrichment.Found(id)
	})

	return enrichment.Bind(countryID, func(countryID string) enrichment.Result[string] {
		alpha2 := c.stringProperty(ctx, countryID, PropertyISOAlpha2)
		if code, ok := alpha2.Get(); ok {
			if normalized := player.NormalizeCountry(code); len(normalized) == 2 {
				return enrichment.Found(normalized)
			}
		}
		if alpha2.Failed() {
			return enrichment.Failed[string](alpha2.Err)
		}

		alpha3 := c.stringProperty(ctx, countryID, PropertyISOAlpha3)
		return enrichment.Bind(alpha3, func(code string) enrichment.Result[string] {
			if normalized, ok := player.CountryFromAlpha3(code); ok {
				return enrichment.Found(normalized)
			}
			c.logger.WarnContext(ctx, "wikidata country code not recognised", "entity_id", countryID, "code", code)
			return enrichment.Empty[string]()
		})
	})
}

func (c *Client) BirthDate(ctx context.Context, entityID string) enrichment.Result[time.Time] {
	return enrichment.Bind(c.FetchProperty(ctx, entityID, PropertyBirthDate), func(claims []Claim) enrichment.Result[time.Time] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[time.Time]()
		}
		raw, precision, ok := claim.Time()
		if !ok {
			return enrichment.Empty[time.Time]()
		}
		born, ok := parseDay(raw, precision)
		if !ok {
			c.logger.DebugContext(ctx, "wikidata birth date is not day precise", "entity_id", entityID, "time", raw)
			return enrichment.Empty[time.Time]()
		}
		return enrichment.Found(born)
	})
}

// Height is in centimeters.
func (c *Client) Height(ctx context.Context, entityID string) enrichment.Result[float64] {
	return c.quantity(ctx, entityID, PropertyHeight, lengthToCM)
}

// Weight is in kilograms.
func (c *Client) Weight(ctx context.Context, entityID string) enrichment.Result[float64] {
	return c.quantity(ctx, entityID, PropertyMass, massToKG)
}

func (c *Client) Hand(ctx context.Context, entityID string) enrichment.Result[player.Hand] {
	return enrichment.Bind(c.FetchProperty(ctx, entityID, PropertyHandedness), func(claims []Claim) enrichment.Result[player.Hand] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[player.Hand]()
		}
		id, _ := claim.EntityID()
		hand, ok := handByItem[id]
		if !ok {
			c.logger.WarnContext(ctx, "wikidata handedness not recognised", "entity_id", entityID, "value", id)
			return enrichment.Empty[player.Hand]()
		}
		return enrichment.Found(hand)
	})
}

// Socials fetches the three handles concurrently. It is Failed only when
// every lookup failed.
func (c *Client) Socials(ctx context.Context, entityID string) enrichment.Result[enrichment.Socials] {
	var instagram, facebook, x enrichment.Result[string]
	profileURL := func(base string) func(string) string {
		return func(handle string) string { return base + handle }
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		instagram = enrichment.Map(c.stringProperty(ctx, entityID, PropertyInstagram), profileURL(instagramURL))
	})
	wg.Go(func() {
		facebook = enrichment.Map(c.stringProperty(ctx, entityID, PropertyFacebook), profileURL(facebookURL))
	})
	wg.Go(func() {
		x = enrichment.Map(c.stringProperty(ctx, entityID, PropertyXUsername), profileURL(xURL))
	})
	wg.Wait()

	if instagram.Failed() && facebook.Failed() && x.Failed() {
		return enrichment.Failed[enrichment.Socials](instagram.Err)
	}

	var out enrichment.Socials
	out.Instagram, _ = instagram.Get()
	out.Facebook, _ = facebook.Get()
	out.XTwitter, _ = x.Get()
	if out.IsZero() {
		return enrichment.Empty[enrichment.Socials]()
	}
	return enrichment.Found(out)
}

// ProSince is the year the player turned professional.
func (c *Client) ProSince(ctx context.Context, entityID string) enrichment.Result[int] {
	return enrichment.Bind(c.FetchProperty(ctx, entityID, PropertyWorkPeriodStart), func(claims []Claim) enrichment.Result[int] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[int]()
		}
		raw, _, ok := claim.Time()
		if !ok {
			return enrichment.Empty[int]()
		}
		year, ok := parseYear(raw)
		if !ok {
			return enrichment.Empty[int]()
		}
		return enrichment.Found(year)
	})
}

func (c *Client) quantity(ctx context.Context, entityID, property string, table map[string]float64) enrichment.Result[float64] {
	return enrichment.Bind(c.FetchProperty(ctx, entityID, property), func(claims []Claim) enrichment.Result[float64] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[float64]()
		}
		amount, unit, ok := claim.Quantity()
		if !ok {
			return enrichment.Empty[float64]()
		}
		converted, ok := convert(table, amount, unit)
		if !ok {
			c.logger.WarnContext(ctx, "wikidata quantity unit not supported",
				"entity_id", entityID,
				"property", property,
				"unit", unit,
			)
			return enrichment.Empty[float64]()
		}
		return enrichment.Found(converted)
	})
}

func (c *Client) stringProperty(ctx context.Context, entityID, property string) enrichment.Result[string] {
	return enrichment.Bind(c.FetchProperty(ctx, entityID, property), func(claims []Claim) enrichment.Result[string] {
		claim, ok := firstClaim(claims)
		if !ok {
			return enrichment.Empty[string]()
		}
		v, ok := claim.String()
		if !ok {
			return enrichment.Empty[string]()
		}
		return enrichment.Found(v)
	})
}

// parseDay reads "+1987-05-22T00:00:00Z". Values less precise than a day
// carry 00 for month or day and are rejected.
func parseDay(raw string, precision int) (time.Time, bool) {
	if precision != 0 && precision < 11 {
		return time.Time{}, false
	}
	raw = strings.TrimPrefix(raw, "+")
	if len(raw) < len("2006-01-02") {
		return time.Time{}, false
	}
	day, err := time.Parse(player.DateLayout, raw[:len("2006-01-02")])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func parseYear(raw string) (int, bool) {
	raw = strings.TrimPrefix(raw, "+")
	idx := strings.IndexByte(raw, '-')
	if idx <= 0 {
		return 0, false
	}
	year, err := strconv.Atoi(raw[:idx])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Hand is the dominant playing hand.
type Hand string

const (
	HandUnknown Hand = ""
	HandRight   Hand = "R"
	HandLeft    Hand = "L"
)

func (h Hand) Valid() bool {
	return h == HandUnknown || h == HandRight || h == HandLeft
}

const MaxIDLength = 32

// ErrAlreadyExists is returned by Repository.Create for a duplicate id.
var ErrAlreadyExists = errors.New("player already exists")

// legacyUnknownBirthDate was written by older imports in place of NULL.
var legacyUnknownBirthDate = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)

// Player is a tennis player record. Zero values mean unknown.
type Player struct {
	ID         string
	FirstName  string
	LastName   string
	FullName   string
	Hand       Hand
	BirthDate  time.Time
	Country    string
	HeightCM   float64
	WeightKG   float64
	WikidataID string
	Instagram  string
	Facebook   string
	XTwitter   string
	ProSince   int
}

// Summary is a listing row.
type Summary struct {
	Player
	// BestRank is the best (lowest) ranking ever held; 0 when unranked.
	BestRank int
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if len(p.ID) > MaxIDLength {
		return fmt.Errorf("player id must be at most %d characters", MaxIDLength)
	}
	if !p.Hand.Valid() {
		return fmt.Errorf("invalid player hand: %s", p.Hand)
	}
	if p.Country != "" && !isAlpha2(p.Country) {
		return fmt.Errorf("invalid player country: %s", p.Country)
	}
	if p.HeightCM < 0 || p.WeightKG < 0 {
		return fmt.Errorf("player height and weight must not be negative")
	}
	if p.ProSince < 0 {
		return fmt.Errorf("player pro since year must not be negative")
	}

	return nil
}

// HasBirthDate treats the legacy 1800-01-01 placeholder as missing.
func (p Player) HasBirthDate() bool {
	return !p.BirthDate.IsZero() && !p.BirthDate.Equal(legacyUnknownBirthDate)
}

// SearchName is the free-text name used to look the player up in the
// knowledge base.
func (p Player) SearchName() string {
	if full := strings.TrimSpace(p.FullName); full != "" {
		return full
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Gaps lists which enrichable attributes are still unknown.
type Gaps struct {
	Identity  bool
	Country   bool
	BirthDate bool
	Height    bool
	Weight    bool
	Hand      bool
	Socials   bool
	ProSince  bool
}

func (p Player) Gaps() Gaps {
	return Gaps{
		Identity:  p.WikidataID == "",
		Country:   p.Country == "",
		BirthDate: !p.HasBirthDate(),
		Height:    p.HeightCM == 0,
		Weight:    p.WeightKG == 0,
		Hand:      p.Hand == HandUnknown,
		Socials:   p.Instagram == "" && p.Facebook == "" && p.XTwitter == "",
		ProSince:  p.ProSince == 0,
	}
}

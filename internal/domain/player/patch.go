package player

import "time"

// Patch is a field-by-field change set. A nil field is left untouched; a
// pointer to a zero value clears the field.
type Patch struct {
	FirstName  *string
	LastName   *string
	FullName   *string
	Hand       *Hand
	BirthDate  *time.Time
	Country    *string
	HeightCM   *float64
	WeightKG   *float64
	WikidataID *string
	Instagram  *string
	Facebook   *string
	XTwitter   *string
	ProSince   *int
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns a copy of pl with every set field overwritten.
func (p Patch) Apply(pl Player) Player {
	setString(&pl.FirstName, p.FirstName)
	setString(&pl.LastName, p.LastName)
	setString(&pl.FullName, p.FullName)
	if p.Hand != nil {
		pl.Hand = *p.Hand
	}
	if p.BirthDate != nil {
		pl.BirthDate = *p.BirthDate
	}
	setString(&pl.Country, p.Country)
	if p.HeightCM != nil {
		pl.HeightCM = *p.HeightCM
	}
	if p.WeightKG != nil {
		pl.WeightKG = *p.WeightKG
	}
	setString(&pl.WikidataID, p.WikidataID)
	setString(&pl.Instagram, p.Instagram)
	setString(&pl.Facebook, p.Facebook)
	setString(&pl.XTwitter, p.XTwitter)
	if p.ProSince != nil {
		pl.ProSince = *p.ProSince
	}
	return pl
}

// FillGaps is Apply restricted to fields that are unknown on pl. It is the
// in-memory equivalent of a backfill and never overwrites data.
func (p Patch) FillGaps(pl Player) Player {
	fillString(&pl.FirstName, p.FirstName)
	fillString(&pl.LastName, p.LastName)
	fillString(&pl.FullName, p.FullName)
	if p.Hand != nil && pl.Hand == HandUnknown {
		pl.Hand = *p.Hand
	}
	if p.BirthDate != nil && !pl.HasBirthDate() {
		pl.BirthDate = *p.BirthDate
	}
	fillString(&pl.Country, p.Country)
	if p.HeightCM != nil && pl.HeightCM == 0 {
		pl.HeightCM = *p.HeightCM
	}
	if p.WeightKG != nil && pl.WeightKG == 0 {
		pl.WeightKG = *p.WeightKG
	}
	fillString(&pl.WikidataID, p.WikidataID)
	fillString(&pl.Instagram, p.Instagram)
	fillString(&pl.Facebook, p.Facebook)
	fillString(&pl.XTwitter, p.XTwitter)
	if p.ProSince != nil && pl.ProSince == 0 {
		pl.ProSince = *p.ProSince
	}
	return pl
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func fillString(dst *string, v *string) {
	if v != nil && *dst == "" {
		*dst = *v
	}
}

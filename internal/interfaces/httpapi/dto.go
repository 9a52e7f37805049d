package httpapi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
	"github.com/riskibarqy/tennis-players/internal/usecase"
)

// flexString accepts a JSON string or number. Set records that the key was
// present in the payload.
type flexString struct {
	Value string
	Set   bool
}

func (f *flexString) UnmarshalJSON(raw []byte) error {
	f.Set = true
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		f.Value = ""
		return nil
	case len(raw) > 0 && raw[0] == '"':
		return sonic.Unmarshal(raw, &f.Value)
	}

	if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	f.Value = string(raw)
	return nil
}

func (f flexString) ptr() *string {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

type playerRequest struct {
	PlayerID   flexString `json:"player_id" validate:"max=32"`
	NameFirst  flexString `json:"name_first" validate:"max=100"`
	NameLast   flexString `json:"name_last" validate:"max=100"`
	FullName   flexString `json:"fullname" validate:"max=200"`
	Hand       flexString `json:"hand" validate:"max=20"`
	BirthDate  flexString `json:"birth_date" validate:"max=20"`
	Country    flexString `json:"country" validate:"max=20"`
	Height     flexString `json:"height" validate:"max=20"`
	Weight     flexString `json:"weight" validate:"max=20"`
	WikidataID flexString `json:"wikidata_id" validate:"max=32"`
	Instagram  flexString `json:"instagram" validate:"max=255"`
	Facebook   flexString `json:"facebook" validate:"max=255"`
	XTwitter   flexString `json:"x_twitter" validate:"max=255"`
	ProSince   flexString `json:"pro_since" validate:"max=4"`
}

func (req playerRequest) fields() (usecase.PlayerFields, error) {
	fields := usecase.PlayerFields{
		FirstName:  req.NameFirst.ptr(),
		LastName:   req.NameLast.ptr(),
		FullName:   req.FullName.ptr(),
		Hand:       req.Hand.ptr(),
		BirthDate:  req.BirthDate.ptr(),
		Country:    req.Country.ptr(),
		Height:     req.Height.ptr(),
		Weight:     req.Weight.ptr(),
		WikidataID: req.WikidataID.ptr(),
		Instagram:  req.Instagram.ptr(),
		Facebook:   req.Facebook.ptr(),
		XTwitter:   req.XTwitter.ptr(),
	}

	if req.ProSince.Set {
		year := 0
		if !player.IsPlaceholder(req.ProSince.Value) {
			parsed, err := strconv.Atoi(strings.TrimSpace(req.ProSince.Value))
			if err != nil {
				return usecase.PlayerFields{}, fmt.Errorf("%w: pro_since must be a year", usecase.ErrInvalidInput)
			}
			year = parsed
		}
		fields.ProSince = &year
	}

	return fields, nil
}

type playerDTO struct {
	PlayerID   string   `json:"player_id"`
	NameFirst  string   `json:"name_first"`
	NameLast   string   `json:"name_last"`
	FullName   string   `json:"fullname"`
	Hand       string   `json:"hand"`
	BirthDate  string   `json:"birth_date"`
	Country    string   `json:"country"`
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	WikidataID string   `json:"wikidata_id"`
	Instagram  string   `json:"instagram"`
	Facebook   string   `json:"facebook"`
	XTwitter   string   `json:"x_twitter"`
	ProSince   *int     `json:"pro_since"`
}

type playerListItemDTO struct {
	playerDTO
	BestRanking *int `json:"best_ranking"`
}

type rankingDTO struct {
	PlayerID    string `json:"player_id"`
	RankingDate string `json:"ranking_date"`
	Rank        int    `json:"rank"`
	Points      int    `json:"points"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		PlayerID:   p.ID,
		NameFirst:  orUnknown(p.FirstName),
		NameLast:   orUnknown(p.LastName),
		FullName:   orUnknown(p.FullName),
		Hand:       orUnknown(string(p.Hand)),
		BirthDate:  orUnknown(player.FormatBirthDate(p)),
		Country:    orUnknown(p.Country),
		Height:     positiveOrNil(p.HeightCM),
		Weight:     positiveOrNil(p.WeightKG),
		WikidataID: orUnknown(p.WikidataID),
		Instagram:  orUnknown(p.Instagram),
		Facebook:   orUnknown(p.Facebook),
		XTwitter:   orUnknown(p.XTwitter),
		ProSince:   positiveOrNil(p.ProSince),
	}
}

func playerSummaryToDTO(s player.Summary) playerListItemDTO {
	return playerListItemDTO{
		playerDTO:   playerToDTO(s.Player),
		BestRanking: positiveOrNil(s.BestRank),
	}
}

func rankingToDTO(r ranking.Ranking) rankingDTO {
	return rankingDTO{
		PlayerID:    r.PlayerID,
		RankingDate: r.Date.Format(player.DateLayout),
		Rank:        r.Rank,
		Points:      r.Points,
	}
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return player.UnknownLabel
	}
	return v
}

func positiveOrNil[T int | float64](v T) *T {
	if v <= 0 {
		return nil
	}
	return &v
}

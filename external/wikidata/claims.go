package wikidata

import (
	"encoding/json"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

const (
	rankPreferred  = "preferred"
	rankDeprecated = "deprecated"
	snakTypeValue  = "value"
)

// Claim is one statement from action=wbgetclaims.
type Claim struct {
	ID       string `json:"id"`
	Rank     string `json:"rank"`
	Mainsnak Snak   `json:"mainsnak"`
}

type Snak struct {
	SnakType  string     `json:"snaktype"`
	Property  string     `json:"property"`
	DataType  string     `json:"datatype"`
	DataValue *DataValue `json:"datavalue"`
}

// DataValue keeps the raw value; its shape depends on Type.
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type entityIDValue struct {
	ID string `json:"id"`
}

type timeValue struct {
	Time      string `json:"time"`
	Precision int    `json:"precision"`
}

type quantityValue struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type claimsResponse struct {
	Claims map[string][]Claim `json:"claims"`
	Error  *apiError          `json:"error"`
}

type searchResponse struct {
	Search []searchHit `json:"search"`
	Error  *apiError   `json:"error"`
}

type searchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (c Claim) value(target any) bool {
	if c.Mainsnak.SnakType != snakTypeValue || c.Mainsnak.DataValue == nil || len(c.Mainsnak.DataValue.Value) == 0 {
		return false
	}
	return sonic.Unmarshal(c.Mainsnak.DataValue.Value, target) == nil
}

// EntityID returns the target id of a wikibase-item claim.
func (c Claim) EntityID() (string, bool) {
	var v entityIDValue
	if !c.value(&v) || strings.TrimSpace(v.ID) == "" {
		return "", false
	}
	return v.ID, true
}

// String returns the value of a string or external-id claim.
func (c Claim) String() (string, bool) {
	var v string
	if !c.value(&v) || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Time returns the raw time literal, e.g. "+1987-05-22T00:00:00Z", and its
// precision (9 year, 10 month, 11 day).
func (c Claim) Time() (string, int, bool) {
	var v timeValue
	if !c.value(&v) || v.Time == "" {
		return "", 0, false
	}
	return v.Time, v.Precision, true
}

// Quantity returns the amount and the unit entity id ("" when unitless).
func (c Claim) Quantity() (float64, string, bool) {
	var v quantityValue
	if !c.value(&v) {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(strings.TrimPrefix(v.Amount, "+"), 64)
	if err != nil {
		return 0, "", false
	}
	unit := v.Unit
	if idx := strings.LastIndex(unit, "/"); idx >= 0 {
		unit = unit[idx+1:]
	}
	if unit == "1" {
		unit = ""
	}
	return amount, unit, true
}

// firstClaim picks the first preferred claim, else the first non-deprecated
// one.
func firstClaim(claims []Claim) (Claim, bool) {
	for _, c := range claims {
		if c.Rank == rankPreferred {
			return c, true
		}
	}
	for _, c := range claims {
		if c.Rank != rankDeprecated {
			return c, true
		}
	}
	return Claim{}, false
}

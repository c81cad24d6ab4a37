// Package contracts models travel assignments and loads them from remote
// or local sources.
package contracts

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// DateLayout is the wire format for contract dates.
const DateLayout = "2006-01-02"

// Coord is a latitude or longitude as exported by the contract backends,
// which emit either a JSON number or a quoted string depending on the
// source. Absent, null or unparseable values decode to NaN rather than
// failing the whole row set; Valid distinguishes usable values.
type Coord float64

// UnmarshalJSON accepts a number, a quoted number or null.
func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Coord(math.NaN())
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			*c = Coord(math.NaN())
			return nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = Coord(math.NaN())
		return nil
	}

	*c = Coord(v)
	return nil
}

// MarshalJSON writes null for invalid coordinates so round trips keep
// the absent-value meaning instead of producing an encoding error.
func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(c))
}

// Valid reports whether the coordinate is a finite number.
func (c Coord) Valid() bool {
	f := float64(c)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Contract is a single travel assignment row.
type Contract struct {
	ID        int64  `json:"id" yaml:"id"`
	Facility  string `json:"facility" yaml:"facility"`
	City      string `json:"city,omitempty" yaml:"city,omitempty"`
	State     string `json:"state,omitempty" yaml:"state,omitempty"`
	Latitude  Coord  `json:"latitude" yaml:"latitude"`
	Longitude Coord  `json:"longitude" yaml:"longitude"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// UnmarshalJSON seeds both coordinates with NaN before decoding, so rows
// that omit the keys entirely read as missing rather than as 0,0.
func (c *Contract) UnmarshalJSON(data []byte) error {
	type alias Contract
	row := alias{Latitude: Coord(math.NaN()), Longitude: Coord(math.NaN())}
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	*c = Contract(row)
	return nil
}

// HasCoordinates reports whether both coordinates are usable numbers.
func (c Contract) HasCoordinates() bool {
	return c.Latitude.Valid() && c.Longitude.Valid()
}

// Ended reports whether the contract's end date lies strictly before the
// given day. Contracts without a parseable end date are open-ended.
func (c Contract) Ended(day time.Time) bool {
	if c.EndDate == "" {
		return false
	}
	end, err := time.Parse(DateLayout, c.EndDate)
	if err != nil {
		return false
	}
	return end.Before(day.Truncate(24 * time.Hour))
}

// Package domain contains the core business entities and rules.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Verse is a single line of a poem as returned by the oracle.
type Verse struct {
	Text string `json:"text"`
}

// Poem is the ordered verse sequence of one oracle answer.
type Poem struct {
	Verses []Verse
}

// UnmarshalJSON accepts "verses" either as an array or as a single verse object.
func (p *Poem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Verses json.RawMessage `json:"verses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPoemResponse, err)
	}

	body := bytes.TrimSpace(raw.Verses)
	switch {
	case len(body) == 0 || bytes.Equal(body, []byte("null")):
		return fmt.Errorf("%w: missing verses", ErrInvalidPoemResponse)
	case body[0] == '[':
		var verses []Verse
		if err := json.Unmarshal(body, &verses); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPoemResponse, err)
		}
		p.Verses = verses
	case body[0] == '{':
		var v Verse
		if err := json.Unmarshal(body, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPoemResponse, err)
		}
		p.Verses = []Verse{v}
	default:
		return fmt.Errorf("%w: verses is neither list nor object", ErrInvalidPoemResponse)
	}

	if len(p.Verses) == 0 {
		return fmt.Errorf("%w: empty verses", ErrInvalidPoemResponse)
	}
	return nil
}

// PickCouplet returns two adjacent verses joined by a newline, starting at an
// even offset chosen by intn (which must behave like rand.IntN).
// A single-verse poem yields that verse unchanged.
func (p Poem) PickCouplet(intn func(n int) int) (string, error) {
	switch n := len(p.Verses); {
	case n == 0:
		return "", ErrInvalidPoemResponse
	case n == 1:
		return p.Verses[0].Text, nil
	default:
		i := 2 * intn(n/2)
		return p.Verses[i].Text + "\n" + p.Verses[i+1].Text, nil
	}
}

package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PricePattern is the accepted textual form of a price: digits with an
// optional one- or two-digit fractional part.
var PricePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

var ErrInvalidPrice = errors.New("invalid price")

// Price is an amount in cents.
type Price int64

// ParsePrice converts "299.99", "299.9" or "299" into cents.
func ParsePrice(s string) (Price, error) {
	if !PricePattern.MatchString(s) {
		return 0, ErrInvalidPrice
	}
	whole, frac, _ := strings.Cut(s, ".")
	for len(frac) < 2 {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	if units > (1<<63-1-cents)/100 {
		return 0, ErrInvalidPrice
	}
	return Price(units*100 + cents), nil
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned for an enumerated value outside its closed set.
var ErrUnknownTag = errors.New("manifest: unknown tag")

// CurrencyStatus marks whether a token is live, dead, for testing, or private.
type CurrencyStatus uint8

const (
	CurrencyLive CurrencyStatus = iota + 1
	CurrencyDead
	CurrencyTest
	CurrencyPrivate
)

var currencyStatusTags = []string{
	CurrencyLive:    "live",
	CurrencyDead:    "dead",
	CurrencyTest:    "test",
	CurrencyPrivate: "private",
}

// AnchoredCurrencyType is the kind of asset a token is anchored to.
type AnchoredCurrencyType uint8

const (
	AnchorFiat AnchoredCurrencyType = iota + 1
	AnchorCrypto
	AnchorStock
	AnchorBond
	AnchorCommodity
	AnchorRealEstate
	AnchorOther
)

var anchoredCurrencyTypeTags = []string{
	AnchorFiat:       "fiat",
	AnchorCrypto:     "crypto",
	AnchorStock:      "stock",
	AnchorBond:       "bond",
	AnchorCommodity:  "commodity",
	AnchorRealEstate: "realestate",
	AnchorOther:      "other",
}

// ParseCurrencyStatus matches s case-insensitively against the status tags.
func ParseCurrencyStatus(s string) (CurrencyStatus, error) {
	i, err := matchTag("currency status", currencyStatusTags, s)
	return CurrencyStatus(i), err
}

func (s CurrencyStatus) String() string {
	return tagName(currencyStatusTags, int(s))
}

func (s CurrencyStatus) MarshalText() ([]byte, error) {
	if tagName(currencyStatusTags, int(s)) == "" {
		return nil, fmt.Errorf("%w: currency status %d", ErrUnknownTag, s)
	}
	return []byte(s.String()), nil
}

func (s *CurrencyStatus) UnmarshalText(text []byte) error {
	v, err := ParseCurrencyStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseAnchoredCurrencyType matches s case-insensitively against the anchor tags.
func ParseAnchoredCurrencyType(s string) (AnchoredCurrencyType, error) {
	i, err := matchTag("anchor asset type", anchoredCurrencyTypeTags, s)
	return AnchoredCurrencyType(i), err
}

func (a AnchoredCurrencyType) String() string {
	return tagName(anchoredCurrencyTypeTags, int(a))
}

func (a AnchoredCurrencyType) MarshalText() ([]byte, error) {
	if tagName(anchoredCurrencyTypeTags, int(a)) == "" {
		return nil, fmt.Errorf("%w: anchor asset type %d", ErrUnknownTag, a)
	}
	return []byte(a.String()), nil
}

func (a *AnchoredCurrencyType) UnmarshalText(text []byte) error {
	v, err := ParseAnchoredCurrencyType(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func matchTag(kind string, tags []string, s string) (int, error) {
	for i, tag := range tags {
		if tag != "" && strings.EqualFold(tag, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownTag, kind, s)
}

func tagName(tags []string, i int) string {
	if i <= 0 || i >= len(tags) {
		return ""
	}
	return tags[i]
}

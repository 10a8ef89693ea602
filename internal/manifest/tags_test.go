package manifest

import (
	"errors"
	"testing"

	"github.com/danmuck/stellartoml/internal/testutil/testlog"
	"github.com/danmuck/stellartoml/internal/textvalue"
)

func TestCurrencyStatusCaseInsensitive(t *testing.T) {
	testlog.Start(t)
	cases := map[string]CurrencyStatus{
		"live":    CurrencyLive,
		"LIVE":    CurrencyLive,
		"Dead":    CurrencyDead,
		"test":    CurrencyTest,
		"PRIVATE": CurrencyPrivate,
	}
	for in, want := range cases {
		got, err := ParseCurrencyStatus(in)
		if err != nil || got != want {
			t.Fatalf("ParseCurrencyStatus(%q)=%v,%v", in, got, err)
		}
		out, err := textvalue.Format(got)
		if err != nil || out != want.String() {
			t.Fatalf("format %v: %q %v", got, out, err)
		}
	}
}

func TestAnchoredCurrencyTypeTags(t *testing.T) {
	testlog.Start(t)
	for _, name := range []string{"fiat", "crypto", "stock", "bond", "commodity", "realestate", "other"} {
		v, err := ParseAnchoredCurrencyType(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if v.String() != name {
			t.Fatalf("unexpected canonical name: %q", v.String())
		}
	}
	if v, err := ParseAnchoredCurrencyType("RealEstate"); err != nil || v != AnchorRealEstate {
		t.Fatalf("mixed case: %v %v", v, err)
	}
}

func TestUnknownTagsNeverDefault(t *testing.T) {
	testlog.Start(t)
	if v, err := ParseCurrencyStatus("zombie"); !errors.Is(err, ErrUnknownTag) || v != 0 {
		t.Fatalf("status zombie: %v %v", v, err)
	}
	if _, err := ParseAnchoredCurrencyType(""); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("empty anchor type: %v", err)
	}
	var zero CurrencyStatus
	if _, err := zero.MarshalText(); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("zero status must not marshal: %v", err)
	}
}

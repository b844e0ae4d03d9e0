package keywords

import (
	"reflect"
	"testing"
)

func TestPreprocess_Basic(t *testing.T) {
	got := Preprocess([]string{"Dust Storms", "Delhi Weather"}, ModeBasic)
	want := []string{"dust", "storms", "delhi", "weather"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Preprocess basic = %v, want %v", got, want)
	}
}

func TestPreprocess_EmptyInput(t *testing.T) {
	if got := Preprocess(nil, ModeBasic); len(got) != 0 {
		t.Errorf("expected empty output for nil input, got %v", got)
	}
	if got := Preprocess([]string{}, ModeEnriched); len(got) != 0 {
		t.Errorf("expected empty output for empty input, got %v", got)
	}
	if got := Preprocess([]string{"", ""}, ModeEnriched); len(got) != 0 {
		t.Errorf("expected empty output for blank phrases, got %v", got)
	}
}

func TestPreprocess_EnrichedDropsStopwords(t *testing.T) {
	got := Preprocess([]string{"the storm in Delhi"}, ModeEnriched)
	for _, tok := range got {
		if tok == "the" || tok == "in" {
			t.Errorf("stopword %q survived enriched preprocessing: %v", tok, got)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 tokens, got %v", got)
	}
}

func TestPreprocess_EnrichedStripsNonAlpha(t *testing.T) {
	got := Preprocess([]string{"covid-19 surge!"}, ModeEnriched)
	for _, tok := range got {
		for _, r := range tok {
			if r < 'a' || r > 'z' {
				t.Errorf("non-alphabetic rune %q in token %q", r, tok)
			}
		}
	}
}

func TestPreprocess_EnrichedStems(t *testing.T) {
	a := Preprocess([]string{"storms"}, ModeEnriched)
	b := Preprocess([]string{"storm"}, ModeEnriched)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected %v and %v to share a stem", a, b)
	}
}

func TestPreprocess_Deterministic(t *testing.T) {
	in := []string{"Rain", "Delhi", "dust storms bring", "sudden turn"}
	first := Preprocess(in, ModeEnriched)
	for i := 0; i < 10; i++ {
		if got := Preprocess(in, ModeEnriched); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: output %v differs from %v", i, got, first)
		}
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet([]string{"Rain", "rain", "", "delhi"})
	if len(set) != 2 {
		t.Errorf("expected 2 distinct tokens, got %d", len(set))
	}
	if _, ok := set["rain"]; !ok {
		t.Error("expected lowercase rain in set")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("basic") != ModeBasic {
		t.Error("expected basic mode")
	}
	if ParseMode("enriched") != ModeEnriched {
		t.Error("expected enriched mode")
	}
	if ParseMode("") != ModeEnriched {
		t.Error("expected enriched default")
	}
}

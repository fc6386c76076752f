package selection

import (
	stderrs "errors"
	"testing"
	"time"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/core/normalize"
	perr "oilwatch/internal/platform/errors"
)

func fixture() corpus.Dataset {
	n := normalize.New()
	day := func(y int) time.Time { return time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return corpus.FromArticles([]corpus.Article{
		corpus.NewArticle("Shell", day(2019), "a", "one", n),
		corpus.NewArticle("BP", day(2020), "b", "two", n),
		corpus.NewArticle("Eni", day(2020), "c", "three", n),
		corpus.NewArticle("BP", day(2021), "d", "four", n),
		corpus.NewArticle("Shell", day(2022), "e", "five", n),
	})
}

func TestYears(t *testing.T) {
	lo, hi, ok := Years(fixture())
	if !ok || lo != 2019 || hi != 2022 {
		t.Fatalf("Years = %d,%d,%v", lo, hi, ok)
	}
	if _, _, ok := Years(corpus.Dataset{}); ok {
		t.Fatalf("empty dataset must report !ok")
	}
}

func TestByYearRange(t *testing.T) {
	ds := fixture()

	tests := []struct {
		name       string
		start, end int
		want       int
		wantErr    bool
	}{
		{name: "full", start: 2019, end: 2022, want: 5},
		{name: "inclusive bounds", start: 2020, end: 2021, want: 3},
		{name: "single year", start: 2020, end: 2020, want: 2},
		{name: "outside data", start: 1990, end: 1995, want: 0},
		{name: "inverted fails open", start: 2022, end: 2019, want: 5, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ByYearRange(ds, tc.start, tc.end)
			if tc.wantErr {
				if !stderrs.Is(err, ErrInvertedYearRange) {
					t.Fatalf("want ErrInvertedYearRange, got %v", err)
				}
				if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
					t.Fatalf("code=%v", perr.CodeOf(err))
				}
			} else if err != nil {
				t.Fatalf("unexpected err %v", err)
			}
			if got.Len() != tc.want {
				t.Fatalf("len=%d want %d", got.Len(), tc.want)
			}
		})
	}

	single, _ := ByYearRange(ds, 2020, 2020)
	single.Each(func(_ int, a *corpus.Article) {
		if a.Year != 2020 {
			t.Fatalf("row from %d leaked into single-year filter", a.Year)
		}
	})
}

func TestByCompanies(t *testing.T) {
	ds := fixture()
	if got := ByCompanies(ds, []string{"BP", "Eni"}); got.Len() != 3 {
		t.Fatalf("len=%d", got.Len())
	}
	if got := ByCompanies(ds, nil); got.Len() != 0 {
		t.Fatalf("empty selection must select nothing, got %d", got.Len())
	}
	if got := ByCompanies(ds, []string{"Nobody"}); got.Len() != 0 {
		t.Fatalf("unknown company must select nothing, got %d", got.Len())
	}
}

func TestCompanies(t *testing.T) {
	got := Companies(fixture())
	want := []string{"BP", "Eni", "Shell"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if got := Companies(corpus.Dataset{}); got == nil || len(got) != 0 {
		t.Fatalf("empty dataset should give an empty non-nil slice, got %#v", got)
	}
}

func TestDictionaries(t *testing.T) {
	reg := dictionary.MustLoad("")

	got, err := Dictionaries(reg, []string{"prosocial", "climate_change", "prosocial"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(got) != 2 || got[0].Key != "prosocial" || got[1].Key != "climate_change" {
		t.Fatalf("got %+v", got)
	}

	got, err = Dictionaries(reg, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty selection: %v %v", got, err)
	}

	if _, err := Dictionaries(reg, []string{"climate_change", "bogus"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

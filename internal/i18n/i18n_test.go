package i18n

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/julianstephens/soberly/internal/milestones"
	"github.com/julianstephens/soberly/internal/models"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"loc/en.yaml":   {Data: []byte("greeting: \"Hello\"\nonly.en: \"English only\"\ntime.day.one: \"day\"\ntime.day.other: \"days\"\n")},
		"loc/ru.yaml":   {Data: []byte("greeting: \"Привет\"\ntime.day.one: \"день\"\ntime.day.few: \"дня\"\ntime.day.many: \"дней\"\n")},
		"loc/notes.txt": {Data: []byte("ignored")},
	}
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr, err := NewFromFS(testFS(), "loc", "en", "ru")
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"greeting", "Привет"},
		{"only.en", "English only"},
		{"missing.key", "missing.key"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.key); got != tt.want {
			t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTranslator_Has(t *testing.T) {
	tr, err := NewFromFS(testFS(), "loc", "en", "ru")
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}
	for key, want := range map[string]bool{"greeting": true, "only.en": true, "missing.key": false} {
		if got := tr.Has(key); got != want {
			t.Errorf("Has(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestTranslator_SetLanguage(t *testing.T) {
	tr, err := NewFromFS(testFS(), "loc", "en", "en")
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}
	if got := tr.T("greeting"); got != "Hello" {
		t.Fatalf("T(greeting) = %q, want Hello", got)
	}

	tr.SetLanguage("ru")
	if tr.Language() != "ru" {
		t.Errorf("Language() = %q, want ru", tr.Language())
	}
	if got := tr.T("greeting"); got != "Привет" {
		t.Errorf("after switch T(greeting) = %q, want Привет", got)
	}

	tr.SetLanguage("fr")
	if tr.Language() != "en" {
		t.Errorf("unknown language should fall back to en, got %q", tr.Language())
	}
}

func TestTranslator_Plural(t *testing.T) {
	tr, err := NewFromFS(testFS(), "loc", "en", "en")
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}

	if got := tr.Plural("time.day", 0); got != "0 days" {
		t.Errorf("Plural(0) = %q, want \"0 days\"", got)
	}
	if got := tr.Plural("time.day", 1); got != "1 day" {
		t.Errorf("Plural(1) = %q, want \"1 day\"", got)
	}

	tr.SetLanguage("ru")
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 дней"},
		{1, "1 день"},
		{2, "2 дня"},
		{4, "4 дня"},
		{5, "5 дней"},
		{11, "11 дней"},
		{12, "12 дней"},
		{14, "14 дней"},
		{21, "21 день"},
		{22, "22 дня"},
		{111, "111 дней"},
		{101, "101 день"},
	}
	for _, tt := range tests {
		if got := tr.Plural("time.day", tt.n); got != tt.want {
			t.Errorf("ru Plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if got := tr.Plural("time.fortnight", 3); got != "3 time.fortnight" {
		t.Errorf("missing unit = %q", got)
	}
}

func TestPluralCategory(t *testing.T) {
	tests := []struct {
		lang string
		n    int
		want Category
	}{
		{"en", 0, Other},
		{"en", 1, One},
		{"en", 2, Other},
		{"ru", 1, One},
		{"ru", 3, Few},
		{"ru", 11, Many},
		{"ru", 13, Many},
		{"ru", 23, Few},
		{"ru", 25, Many},
		{"ru", 31, One},
	}
	for _, tt := range tests {
		if got := PluralCategory(tt.lang, tt.n); got != tt.want {
			t.Errorf("PluralCategory(%s, %d) = %s, want %s", tt.lang, tt.n, got, tt.want)
		}
	}
}

func TestDetectSystemLanguage(t *testing.T) {
	supported := []string{"en", "ru"}
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"empty", map[string]string{}, "en"},
		{"posix", map[string]string{"LANG": "C"}, "en"},
		{"russian LANG", map[string]string{"LANG": "ru_RU.UTF-8"}, "ru"},
		{"LC_ALL wins", map[string]string{"LC_ALL": "ru_RU.UTF-8", "LANG": "en_US.UTF-8"}, "ru"},
		{"override", map[string]string{"SOBERLY_LANG": "en", "LANG": "ru_RU.UTF-8"}, "en"},
		{"unsupported", map[string]string{"LANG": "ja_JP.UTF-8"}, "en"},
		{"british english", map[string]string{"LANG": "en_GB"}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			if got := DetectSystemLanguage(getenv, supported); got != tt.want {
				t.Errorf("DetectSystemLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFallback(t *testing.T) {
	tr := NewFallback()
	if got := tr.T("mood.good"); got != "mood.good" {
		t.Errorf("T() = %q, want key echo", got)
	}
}

func TestEmbeddedBundles_CoverCatalogs(t *testing.T) {
	for _, lang := range []string{"en", "ru"} {
		tr, err := New(lang)
		if err != nil {
			t.Fatalf("New(%s) error = %v", lang, err)
		}
		if tr.Language() != lang {
			t.Fatalf("Language() = %q, want %q", tr.Language(), lang)
		}

		var keys []string
		for _, m := range milestones.HealthMilestones() {
			keys = append(keys, m.TitleKey, m.DescriptionKey)
		}
		for _, a := range milestones.Achievements() {
			keys = append(keys, a.TitleKey, a.DescriptionKey)
		}
		for _, m := range models.AllMoods {
			keys = append(keys, m.LocalizationKey(), "mood.tier."+string(m))
		}
		for _, f := range []string{"daily", "weekly", "monthly"} {
			keys = append(keys, "notification.title."+f, "notification.body."+f, "settings.frequency."+f)
		}

		for _, k := range keys {
			if _, ok := tr.active.Load().entries[k]; !ok {
				t.Errorf("%s bundle missing key %q", lang, k)
			}
		}

		for _, unit := range []string{"time.day", "time.week", "time.month", "time.year"} {
			for _, n := range []int{1, 2, 5} {
				if label := tr.PluralLabel(unit, n); label == unit || strings.HasPrefix(label, "time.") {
					t.Errorf("%s has no plural form for %s n=%d", lang, unit, n)
				}
			}
		}
	}
}

func TestEmbeddedBundles_RussianMatchesEnglish(t *testing.T) {
	en, err := New("en")
	if err != nil {
		t.Fatalf("New(en) error = %v", err)
	}
	ru := en.bundles["ru"]
	if ru == nil {
		t.Fatal("ru bundle not loaded")
	}
	for k := range en.bundles["en"].entries {
		if strings.HasPrefix(k, "time.") {
			continue
		}
		if _, ok := ru.entries[k]; !ok {
			t.Errorf("ru bundle missing %q", k)
		}
	}
}

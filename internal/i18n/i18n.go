// Package i18n resolves localization keys against embedded YAML bundles.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/soberly/internal/constants"
)

// DefaultLanguage is used when the requested or detected language has no bundle.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var localesFS embed.FS

type bundle struct {
	lang    string
	entries map[string]string
}

// Translator loads YAML locale bundles and provides lookup with fallback.
// The active bundle is swapped atomically by SetLanguage.
type Translator struct {
	bundles     map[string]*bundle
	defaultLang string
	active      atomic.Pointer[bundle]
}

// New loads the embedded bundles and activates lang. An empty lang selects
// the system language.
func New(lang string) (*Translator, error) {
	return NewFromFS(localesFS, "locales", DefaultLanguage, lang)
}

// NewFromFS loads every <lang>.yaml file under dir in fsys.
func NewFromFS(fsys fs.FS, dir, defaultLang, lang string) (*Translator, error) {
	t := &Translator{
		bundles:     make(map[string]*bundle),
		defaultLang: defaultLang,
	}

	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		code := strings.TrimSuffix(f.Name(), ".yaml")
		data, err := fs.ReadFile(fsys, path.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		kv := make(map[string]string)
		if err := yaml.Unmarshal(data, &kv); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
		t.bundles[code] = &bundle{lang: code, entries: kv}
	}

	if _, ok := t.bundles[defaultLang]; !ok {
		t.bundles[defaultLang] = &bundle{lang: defaultLang, entries: map[string]string{}}
	}

	t.SetLanguage(lang)
	return t, nil
}

// NewFallback creates a translator with no entries; every lookup returns the key.
func NewFallback() *Translator {
	t := &Translator{
		bundles:     map[string]*bundle{DefaultLanguage: {lang: DefaultLanguage, entries: map[string]string{}}},
		defaultLang: DefaultLanguage,
	}
	t.active.Store(t.bundles[DefaultLanguage])
	return t
}

// SetLanguage activates the bundle for lang. An empty lang resolves the
// system language; unknown languages fall back to the default.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = DetectSystemLanguage(os.Getenv, t.Available())
	}
	b, ok := t.bundles[lang]
	if !ok {
		b = t.bundles[t.defaultLang]
	}
	t.active.Store(b)
}

// Language returns the active language code.
func (t *Translator) Language() string {
	return t.active.Load().lang
}

// T returns the translation for key with fallback to the default language
// and then the key itself.
func (t *Translator) T(key string) string {
	if val, ok := t.active.Load().entries[key]; ok {
		return val
	}
	if val, ok := t.bundles[t.defaultLang].entries[key]; ok {
		return val
	}
	return key
}

// Tf formats the translation for key with args.
func (t *Translator) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

// Has reports whether key resolves in the active or default bundle.
func (t *Translator) Has(key string) bool {
	if _, ok := t.active.Load().entries[key]; ok {
		return true
	}
	_, ok := t.bundles[t.defaultLang].entries[key]
	return ok
}

// Plural returns "n label" where label is the plural form of unitKey
// (e.g. "time.day") for n in the active language.
func (t *Translator) Plural(unitKey string, n int) string {
	return fmt.Sprintf("%d %s", n, t.PluralLabel(unitKey, n))
}

// PluralLabel returns only the plural form of unitKey for n.
func (t *Translator) PluralLabel(unitKey string, n int) string {
	key := unitKey + "." + string(PluralCategory(t.Language(), n))
	if val, ok := t.active.Load().entries[key]; ok {
		return val
	}
	// Default bundle uses English categories.
	key = unitKey + "." + string(PluralCategory(t.defaultLang, n))
	if val, ok := t.bundles[t.defaultLang].entries[key]; ok {
		return val
	}
	return unitKey
}

// Available returns loaded language codes, sorted.
func (t *Translator) Available() []string {
	keys := make([]string, 0, len(t.bundles))
	for k := range t.bundles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Category is a CLDR plural category.
type Category string

const (
	One   Category = "one"
	Few   Category = "few"
	Many  Category = "many"
	Other Category = "other"
)

// PluralCategory returns the plural category of n for lang.
func PluralCategory(lang string, n int) Category {
	if n < 0 {
		n = -n
	}
	switch lang {
	case "ru":
		mod10, mod100 := n%10, n%100
		switch {
		case mod10 == 1 && mod100 != 11:
			return One
		case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
			return Few
		default:
			return Many
		}
	default:
		if n == 1 {
			return One
		}
		return Other
	}
}

// DetectSystemLanguage matches the POSIX locale environment against the
// supported language codes. getenv is usually os.Getenv.
func DetectSystemLanguage(getenv func(string) string, supported []string) string {
	if len(supported) == 0 {
		return DefaultLanguage
	}

	var raw string
	for _, name := range []string{constants.EnvLanguage, "LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			raw = v
			break
		}
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return DefaultLanguage
	}

	// en_US.UTF-8 -> en-US
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")

	tags := make([]language.Tag, 0, len(supported))
	hasDefault := false
	for _, s := range supported {
		if s == DefaultLanguage {
			hasDefault = true
		}
	}
	// The matcher treats the first tag as its fallback.
	if hasDefault {
		tags = append(tags, language.Make(DefaultLanguage))
	}
	for _, s := range supported {
		if s != DefaultLanguage {
			tags = append(tags, language.Make(s))
		}
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(language.Make(raw))
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := tags[idx].Base()
	return base.String()
}

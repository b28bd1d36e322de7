package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifespan/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// dateLocales maps output languages onto monday's month and weekday names.
// monday ships no Arabic tables; the Arabic catalog uses a numeric layout.
var dateLocales = map[string]monday.Locale{
	"en": monday.LocaleEnUS,
	"fr": monday.LocaleFrFR,
	"ar": monday.LocaleEnUS,
}

// LoadBundle reads every embedded active.<lang>.json catalog.
// It returns the bundle and the languages found, in directory order.
func LoadBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		lang := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if lang == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyFile, name,
		)
		langs = append(langs, lang)
	}
	return bundle, langs, nil
}

// Translator localizes labels, numbers and dates for one language.
// Numbers keep their value; only the digits and separators change.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
	printer   *message.Printer
	dates     monday.Locale
}

// NewTranslator builds a Translator for lang, one of config.SupportedLanguages.
func NewTranslator(lang string) (*Translator, error) {
	if lang == "" {
		lang = config.DefaultLanguage
	}

	bundle, langs, err := LoadBundle()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(langs, lang) {
		return nil, fmt.Errorf("%s: %q", config.ErrLocaleNotFound, lang)
	}

	tag := language.Make(lang)
	return &Translator{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang),
		printer:   message.NewPrinter(tag),
		dates:     dateLocales[lang],
	}, nil
}

// Lang returns the language code in use.
func (t *Translator) Lang() string {
	return t.lang
}

// Msg translates a key, falling back to the key itself.
func (t *Translator) Msg(key string) string {
	return t.Format(key, nil)
}

// Format translates a key with template data, falling back to the key itself.
func (t *Translator) Format(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Int renders an integer with the language's digits and grouping.
func (t *Translator) Int(v int64) string {
	return t.printer.Sprintf("%v", number.Decimal(v))
}

// Decimal renders v with at most two fraction digits.
func (t *Translator) Decimal(v float64) string {
	return t.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Date renders a calendar date with the localized long layout.
func (t *Translator) Date(d time.Time) string {
	layout := t.Msg(config.TKeyFmtDateLong)
	if layout == config.TKeyFmtDateLong {
		layout = config.DateFormatDisplay
	}
	return monday.Format(d, layout, t.dates)
}

// BirthdaySummary localizes a birthday event title.
func (t *Translator) BirthdaySummary(name string, age int, yearKnown bool) string {
	switch {
	case !yearKnown:
		return t.Format(config.TKeyFmtSummaryName, map[string]any{"Name": name})
	case age == 0:
		return t.Format(config.TKeyFmtSummaryBirth, map[string]any{"Name": name})
	default:
		return t.Format(config.TKeyFmtSummary, map[string]any{"Name": name, "Age": t.Int(int64(age))})
	}
}

// MilestoneSummary localizes a day-count milestone event title.
func (t *Translator) MilestoneSummary(name string, days int) string {
	return t.Format(config.TKeyFmtSummaryMs, map[string]any{"Name": name, "Days": t.Int(int64(days))})
}

// Package contacts loads birth dates from vCard sources, either a local file
// or a CardDAV/WebDAV URL, and turns them into subjects for the engine.
package contacts

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
)

// FallbackName is used when a card carries neither FN nor N.
const FallbackName = "Unknown"

// Subject is one person with a birth date.
type Subject struct {
	// UID is a stable hash of the name and birth date.
	UID  string `json:"uid"`
	Name string `json:"name"`

	// Birth is a date at midnight. Without a known year it sits in config.DefaultLeapYear.
	Birth     calendar.Point `json:"birth"`
	YearKnown bool           `json:"year_known"`
}

// Source selects where vCards come from. Exactly one of File or URL must be set.
type Source struct {
	File     string
	URL      string
	User     string
	Password string
}

// Validate enforces the File/URL exclusivity.
func (s Source) Validate() error {
	switch {
	case s.File == "" && s.URL == "":
		return errors.New(config.ErrSourceMissing)
	case s.File != "" && s.URL != "":
		return errors.New(config.ErrSourceConflict)
	}
	return nil
}

// Stats summarizes one decoding pass.
type Stats struct {
	Processed    int `json:"processed"`
	WithBirthday int `json:"with_birthday"`
	Malformed    int `json:"malformed"`
}

// Loader reads subjects from a Source.
type Loader struct {
	Fetcher VCardFetcher
}

// NewLoader returns a Loader backed by the HTTP fetcher.
func NewLoader() *Loader {
	return &Loader{Fetcher: NewHTTPFetcher()}
}

// Load opens the source and decodes every card that carries a usable BDAY.
// Subjects are sorted by name.
func (l *Loader) Load(ctx context.Context, src Source) ([]Subject, Stats, error) {
	start := time.Now()

	reader, err := l.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, Stats{}, ctx.Err()
		}
		return nil, Stats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	subjects, stats, err := Decode(ctx, reader)
	if err != nil {
		return nil, stats, err
	}

	slog.InfoContext(ctx, config.MsgContactsLoaded,
		config.LogKeyComponent, config.CompContacts,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyFound, stats.WithBirthday),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return subjects, stats, nil
}

func (l *Loader) acquireStream(ctx context.Context, src Source) (io.ReadCloser, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.File != "" {
		return os.Open(src.File)
	}
	if l.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	return l.Fetcher.Fetch(ctx, src.URL, src.User, src.Password)
}

// Decode reads cards from r until EOF. Malformed cards and unreadable
// birthdays are logged and skipped so one bad entry never hides the others.
func Decode(ctx context.Context, r io.Reader) ([]Subject, Stats, error) {
	decoder := vcard.NewDecoder(r)
	var stats Stats
	var subjects []Subject

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Malformed++
			slog.WarnContext(ctx, config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			continue
		}
		stats.Processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birth, yearKnown, err := ParseBirthday(bday.Value)
		if err != nil {
			slog.DebugContext(ctx, config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.WithBirthday++

		name := cardName(card)
		subjects = append(subjects, Subject{
			UID:       subjectUID(name, birth),
			Name:      name,
			Birth:     birth,
			YearKnown: yearKnown,
		})
	}

	slices.SortStableFunc(subjects, func(a, b Subject) int {
		return strings.Compare(a.Name, b.Name)
	})
	return subjects, stats, nil
}

// cardName prefers FN, then N, then FallbackName.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		full := strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
		if full != "" {
			return full
		}
	}
	return FallbackName
}

func subjectUID(name string, birth calendar.Point) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birth.Time().Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// ParseBirthday reads a vCard BDAY value.
// Truncated --MM-DD and --MMDD forms have no year and land in config.DefaultLeapYear
// so that Feb 29 survives.
func ParseBirthday(value string) (calendar.Point, bool, error) {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "--") {
		for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
			if t, err := time.Parse(f, value); err == nil {
				p, err := calendar.NewDate(config.DefaultLeapYear, t.Month(), t.Day())
				return p, false, err
			}
		}
		return calendar.Point{}, false, fmt.Errorf("%w: %q", calendar.ErrInvalidDate, value)
	}

	p, err := calendar.ParsePoint(value)
	if err != nil {
		return calendar.Point{}, false, err
	}
	return p.DateOnly(), true, nil
}

// WithKnownYear keeps the subjects whose birth year is known.
func WithKnownYear(subjects []Subject) []Subject {
	out := make([]Subject, 0, len(subjects))
	for _, s := range subjects {
		if s.YearKnown {
			out = append(out, s)
		}
	}
	return out
}

package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Lifespan/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Lifespan"
	AppID          = "com.github.tartampluch.go-lifespan"
	AppCommand     = "go-lifespan"
	KeyringService = "com.github.tartampluch.go-lifespan"
	LogFileName    = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and generated feeds.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdProfile     = "profile <birth> [reference]"
	CmdSpan        = "span <start> <end>"
	CmdContacts    = "contacts"
	CmdFeed        = "feed"
	CmdCredentials = "credentials"
	CmdServe       = "serve"

	CmdDescRoot        = "Derive calendar-aware facts from a birth date"
	CmdDescProfile     = "Print the full temporal profile of a birth date"
	CmdDescSpan        = "Print the exact difference between two dates"
	CmdDescContacts    = "Print profiles for every contact of a vCard source"
	CmdDescFeed        = "Write an iCalendar feed of upcoming birthdays and milestones"
	CmdDescCredentials = "Save the password of --user to the OS keyring (read from stdin)"
	CmdDescServe       = "Serve the feed and a JSON profile endpoint on localhost"

	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagConfig  = "config"
	FlagLang    = "lang"
	FlagJSON    = "json"
	FlagFile    = "file"
	FlagURL     = "url"
	FlagUser    = "user"
	FlagOut     = "out"
	FlagPort    = "port"
	FlagRefresh = "refresh"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Mirror debug logs to stderr"
	FlagDescConfig  = "Settings file (.yaml, .yml or .toml)"
	FlagDescLang    = "Output language (en, fr, ar)"
	FlagDescJSON    = "Print results as JSON"
	FlagDescFile    = "Local vCard file (.vcf)"
	FlagDescURL     = "CardDAV or WebDAV URL serving vCards"
	FlagDescUser    = "HTTP Basic Auth username (password is read from the OS keyring)"
	FlagDescOut     = "Output file (defaults to stdout)"
	FlagDescPort    = "Local port of the HTTP server"
	FlagDescRefresh = "Interval between two source synchronizations"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	JSONIndent       = "  "
)

// SupportedLanguages defines the list of available output languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr", "ar"}

// -----------------------------------------------------------------------------
// Engine Defaults (overridable through Settings)
// -----------------------------------------------------------------------------

const (
	// DefaultHijriBorrowDays is the fixed month length used when a Hijri age
	// day remainder goes negative. Real Hijri months have 29 or 30 days.
	DefaultHijriBorrowDays = 30
	MinHijriBorrowDays     = 29
	MaxHijriBorrowDays     = 30

	// MinGregorianYear is the first Gregorian year accepted by the Hijri converter.
	MinGregorianYear = 622

	DefaultHemisphere = HemisphereNorth
	HemisphereNorth   = "north"
	HemisphereSouth   = "south"

	DefaultLanguage = "en"
	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
)

// DefaultWeekendDays encodes the Friday/Saturday weekend convention.
// It is a regional choice, not a universal default.
var DefaultWeekendDays = []string{"friday", "saturday"}

// DefaultMilestoneDays lists the day-count milestones reported for every profile.
var DefaultMilestoneDays = []int{1000, 5000, 10000, 15000, 20000, 25000, 30000}

// Life statistics multipliers. Illustrative values, not scientific ones.
const (
	DefaultHeartbeatsPerMinute = 70
	DefaultBreathsPerMinute    = 16
	DefaultBlinksPerMinute     = 17
	DefaultStepsPerDay         = 7500
	DefaultSleepHoursPerDay    = 8
	DefaultMealsPerDay         = 3
	DefaultLifeExpectancyYears = 75
	DefaultDaysPerYear         = 365.25
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTitleProfile   = "title_profile"
	TKeyTitleSpan      = "title_span"
	TKeyTitleHijri     = "title_hijri"
	TKeyTitleZodiac    = "title_zodiac"
	TKeyTitleContext   = "title_context"
	TKeyTitleStats     = "title_stats"
	TKeyTitleNext      = "title_next_birthday"
	TKeyTitleMilestone = "title_milestones"

	TKeyLblBirth       = "lbl_birth"
	TKeyLblReference   = "lbl_reference"
	TKeyLblAge         = "lbl_age"
	TKeyLblTotals      = "lbl_totals"
	TKeyLblWorkdays    = "lbl_workdays"
	TKeyLblHijriBirth  = "lbl_hijri_birth"
	TKeyLblHijriToday  = "lbl_hijri_today"
	TKeyLblHijriAge    = "lbl_hijri_age"
	TKeyLblChinese     = "lbl_chinese"
	TKeyLblWestern     = "lbl_western"
	TKeyLblGeneration  = "lbl_generation"
	TKeyLblBornOn      = "lbl_born_on"
	TKeyLblSeason      = "lbl_season"
	TKeyLblMoon        = "lbl_moon"
	TKeyLblWeek        = "lbl_week"
	TKeyLblDayOfYear   = "lbl_day_of_year"
	TKeyLblHeartbeats  = "lbl_heartbeats"
	TKeyLblBreaths     = "lbl_breaths"
	TKeyLblBlinks      = "lbl_blinks"
	TKeyLblSteps       = "lbl_steps"
	TKeyLblSleep       = "lbl_sleep_hours"
	TKeyLblMeals       = "lbl_meals"
	TKeyLblLifePercent = "lbl_life_percentage"
	TKeyLblNextDate    = "lbl_next_date"
	TKeyLblDaysUntil   = "lbl_days_until"
	TKeyLblTurning     = "lbl_turning"
	TKeyLblReached     = "lbl_reached"
	TKeyLblUpcoming    = "lbl_upcoming"
	TKeyLblUnknown     = "lbl_unknown"

	TKeyFmtDifference = "fmt_difference" // Requires Years, Months, Days, Hours, Minutes, Seconds
	TKeyFmtTotals     = "fmt_totals"     // Requires Days, Weeks, Months, Years
	TKeyFmtWorkdays   = "fmt_workdays"   // Requires Workdays, Weekend
	TKeyFmtHijriAge   = "fmt_hijri_age"  // Requires Years, Months, Days
	TKeyFmtMilestone  = "fmt_milestone"  // Requires Days

	TKeyFmtSummary      = "fmt_event_bday"      // Requires Name, Age
	TKeyFmtSummaryName  = "fmt_event_bday_name" // Requires Name
	TKeyFmtSummaryBirth = "fmt_event_birth"     // Requires Name
	TKeyFmtSummaryMs    = "fmt_event_ms"        // Requires Name, Days
	TKeyFmtDateLong     = "format_date_long"    // monday layout, e.g. "Monday 2 January 2006"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts tried before the free-form parser
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05"
	DateFormatFullTZ    = "2006-01-02T15:04:05Z"
	DateFormatSpaced    = "2006-01-02 15:04:05"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DateFormatDisplay   = "2006-01-02"

	// Hijri display
	FormatHijriDate = "%04d-%02d-%02d"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	UIDSalt         = "go-lifespan-v1-"

	// File Extensions
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtTOML = ".toml"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Lifespan//Feed//EN"
	ICalCalName   = "Birthdays & Milestones"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "golifespan"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	CategoryBirthday  = "BIRTHDAY"
	CategoryMilestone = "MILESTONE"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	DefaultICalRefresh = 24 * time.Hour
	DefaultReminder    = "-P1D"

	FormatUIDName = "%s|%s|%d"
	FormatUID     = "%s@%s"

	EventBirthday  = "birthday"
	EventMilestone = "milestone"

	// Summaries used when no localizer is injected
	FallbackSummary    = "Birthday: %s"
	FallbackSummaryAge = "Birthday: %s (%d)"
	FallbackSummaryMs  = "%s: %d days"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	LocalhostBindAddr = "127.0.0.1"
	AddrSeparator     = ":"
	DefaultPort       = "18080"
	MinPort           = 1
	MaxPort           = 65535

	ShutdownTimeout        = 5 * time.Second
	ServerReadTimeout      = 10 * time.Second
	ServerWriteTimeout     = 30 * time.Second
	ServerIdleTimeout      = 60 * time.Second
	DefaultRefreshInterval = time.Hour
	RetryAfterSeconds      = "10"
	AllowedMethods         = "GET, HEAD"

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	RouteRoot      = "/"
	RouteFeed      = "/feed.ics"
	RouteProfile   = "/profile"
	QueryBirth     = "birth"
	QueryReference = "reference"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Error Messages
// -----------------------------------------------------------------------------

const (
	// Engine taxonomy
	ErrInvalidDate  = "invalid date"
	ErrInvalidRange = "invalid range: end is before start"
	ErrOutOfRange   = "year outside the supported table"
	ErrUnclassified = "input matched no table entry"

	// Configuration
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsFormat  = "unsupported settings format"
	ErrSettingsInvalid = "invalid settings"
	ErrWeekday         = "unknown weekday name"
	ErrHemisphere      = "unknown hemisphere"
	ErrBorrowDays      = "hijri borrow days must be 29 or 30"
	ErrNonPositive     = "value must be positive"

	// Sources
	ErrSourceMissing  = "configuration error: either a file or a URL is required"
	ErrSourceConflict = "configuration error: file and URL are mutually exclusive"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrKeyring        = "failed to read password from keyring"
	ErrKeyringWrite   = "failed to save password to keyring"
	ErrUserMissing    = "a username is required"

	// Output
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrWriteOutput    = "failed to write output"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocaleNotFound = "unsupported language"

	// Server
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrWriteResp      = "failed to write response body"
	ErrRefresh        = "refresh interval must be positive"

	// Process
	ErrLogFile   = "failed to open log file"
	ErrCacheDir  = "could not determine user cache dir"
	ErrCreateDir = "could not create app cache dir"
	ErrAppFailed = "application failed unexpectedly"
	ErrArgs      = "invalid arguments"
	ErrPassRead  = "failed to read password from stdin"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped"
	MsgSettingsLoaded = "Settings loaded"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedProfile = "Skipping contact without profile"
	MsgContactsLoaded = "Contacts loaded"
	MsgFeedGenerated  = "Feed generation successful"
	MsgBirthdayToday  = "Birthday today"
	MsgFeedWritten    = "Feed written"
	MsgDownloadStart  = "Initiating vCard download"
	MsgDownloading    = "vCards downloading"
	MsgStatusError    = "Server returned error status"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgPassSaved      = "Password saved to keyring"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgSyncFailed     = "Feed synchronization failed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyEvents    = "events"
	LogKeyLength    = "content_length"
	LogKeyDuration  = "duration_ms"
	LogKeyDOB       = "dob"
	LogKeyToday     = "today"
	LogKeySubjects  = "subjects"
	LogKeyPort      = "port"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompConfig   = "config"
	CompContacts = "contacts"
	CompFetcher  = "fetcher"
	CompFeed     = "feed"
	CompI18n     = "i18n"
	CompServer   = "server"
)

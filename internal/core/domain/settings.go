package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting keys as stored in the configuration file.
const (
	KeyHTTPTimeout      = "http.timeout_seconds"
	KeyHTTPUserAgent    = "http.user_agent"
	KeyHTTPConcurrency  = "http.concurrency"
	KeyHTTPRate         = "http.requests_per_second"
	KeyQRBoxSize        = "qr.box_size"
	KeyQRBorder         = "qr.border"
	KeyQRRecovery       = "qr.recovery"
	KeyHasherColumnName = "hasher.column_name"
	KeyHistoryEnabled   = "history.enabled"
)

const defaultUserAgentBase = "everyday"

// HTTPSettings controls how the network utilities talk to remote servers.
type HTTPSettings struct {
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int

	// UserAgent is sent with every request.
	UserAgent string

	// Concurrency is the maximum number of requests in flight.
	Concurrency int

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64
}

// QRSettings holds QR code rendering defaults.
type QRSettings struct {
	BoxSize  int
	Border   int
	Recovery QRRecovery
}

// HasherSettings holds row hasher defaults.
type HasherSettings struct {
	ColumnName string
}

// HistorySettings controls run history recording.
type HistorySettings struct {
	Enabled bool
}

// AppSettings is the complete user configuration.
type AppSettings struct {
	HTTP    HTTPSettings
	QR      QRSettings
	Hasher  HasherSettings
	History HistorySettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		HTTP: HTTPSettings{
			TimeoutSeconds:    10,
			UserAgent:         defaultUserAgentBase,
			Concurrency:       4,
			RequestsPerSecond: 5,
		},
		QR: QRSettings{
			BoxSize:  10,
			Border:   4,
			Recovery: QRRecoveryHigh,
		},
		Hasher: HasherSettings{
			ColumnName: "row_id",
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// DefaultUserAgent returns the user agent for a build version.
func DefaultUserAgent(version string) string {
	if version == "" {
		return defaultUserAgentBase
	}
	return defaultUserAgentBase + "/" + version
}

// Validate checks that settings are usable.
func (s AppSettings) Validate() error {
	switch {
	case s.HTTP.TimeoutSeconds <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, KeyHTTPTimeout)
	case s.HTTP.Concurrency <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, KeyHTTPConcurrency)
	case s.HTTP.RequestsPerSecond < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, KeyHTTPRate)
	case s.QR.BoxSize <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, KeyQRBoxSize)
	case s.QR.Border < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, KeyQRBorder)
	case !s.QR.Recovery.IsValid():
		return fmt.Errorf("%w: %s must be one of low, medium, quartile, high", ErrInvalidInput, KeyQRRecovery)
	case strings.TrimSpace(s.Hasher.ColumnName) == "":
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, KeyHasherColumnName)
	}
	return nil
}

// Value returns the field stored under key, or nil for unknown keys.
func (s AppSettings) Value(key string) any {
	switch key {
	case KeyHTTPTimeout:
		return s.HTTP.TimeoutSeconds
	case KeyHTTPUserAgent:
		return s.HTTP.UserAgent
	case KeyHTTPConcurrency:
		return s.HTTP.Concurrency
	case KeyHTTPRate:
		return s.HTTP.RequestsPerSecond
	case KeyQRBoxSize:
		return s.QR.BoxSize
	case KeyQRBorder:
		return s.QR.Border
	case KeyQRRecovery:
		return string(s.QR.Recovery)
	case KeyHasherColumnName:
		return s.Hasher.ColumnName
	case KeyHistoryEnabled:
		return s.History.Enabled
	default:
		return nil
	}
}

// SettingKind is the value type of a setting.
type SettingKind string

// Setting value types.
const (
	SettingString SettingKind = "string"
	SettingInt    SettingKind = "int"
	SettingFloat  SettingKind = "float"
	SettingBool   SettingKind = "bool"
)

// SettingDef describes one configurable key.
type SettingDef struct {
	Key         string
	Kind        SettingKind
	Description string
}

// SettingDefs lists every configurable key in display order.
var SettingDefs = []SettingDef{
	{KeyHTTPTimeout, SettingInt, "Request timeout in seconds"},
	{KeyHTTPUserAgent, SettingString, "User-Agent header for downloads and scraping"},
	{KeyHTTPConcurrency, SettingInt, "Maximum parallel requests"},
	{KeyHTTPRate, SettingFloat, "Requests per second (0 = unlimited)"},
	{KeyQRBoxSize, SettingInt, "QR module size in pixels"},
	{KeyQRBorder, SettingInt, "QR quiet zone in modules"},
	{KeyQRRecovery, SettingString, "QR error correction: low, medium, quartile, high"},
	{KeyHasherColumnName, SettingString, "Default name of the row hash column"},
	{KeyHistoryEnabled, SettingBool, "Record utility runs in the history database"},
}

// LookupSetting finds the definition for a key.
func LookupSetting(key string) (SettingDef, bool) {
	for _, d := range SettingDefs {
		if d.Key == key {
			return d, true
		}
	}
	return SettingDef{}, false
}

// Parse converts a command-line value to the setting's type.
func (d SettingDef) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch d.Kind {
	case SettingInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidInput, d.Key, raw)
		}
		return v, nil
	case SettingFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidInput, d.Key, raw)
		}
		return v, nil
	case SettingBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidInput, d.Key, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

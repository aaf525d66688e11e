// ABOUTME: Parser configuration surface with strict key validation
// ABOUTME: Unrecognized option keys are programmer errors, not document problems

package parser

import (
	"fmt"
	"strconv"
	"time"

	coreerrors "feedcanon/core/errors"
	"feedcanon/pkg/textnorm"
)

// Options configures the liberal parsing engine. The zero value is not
// useful; call DefaultOptions and adjust.
type Options struct {
	// TidyEnabled routes text constructs through the tidy collaborator.
	TidyEnabled bool

	// Tidy is the optional text-repair collaborator.
	Tidy textnorm.RepairFunc

	// SanitizeWithNofollow forces rel=nofollow onto links in sanitized HTML.
	SanitizeWithNofollow bool

	// TimestampEstimationEnabled allows undated entries to borrow
	// timestamps from their siblings.
	TimestampEstimationEnabled bool

	// URLNormalizationEnabled runs extracted URLs through liberal repair.
	URLNormalizationEnabled bool

	// StripCommentCount removes trailing " (n)" comment counters from titles.
	StripCommentCount bool

	// ExpandTabs replaces tabs with spaces in normalized text constructs.
	ExpandTabs bool

	// MaxTTL caps the feed-declared time-to-live.
	MaxTTL time.Duration

	// OutputEncoding is the charset declared on serialized documents.
	OutputEncoding string

	// GeneratorName and GeneratorHref identify this software in output.
	GeneratorName string
	GeneratorHref string

	// UserAgent is consumed by the retrieval collaborator, not the resolver.
	UserAgent string

	// ExtraNamespaces adds prefix bindings to the resolver table.
	ExtraNamespaces map[string]string
}

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return Options{
		TidyEnabled:                false,
		Tidy:                       textnorm.GoqueryRepair,
		SanitizeWithNofollow:       false,
		TimestampEstimationEnabled: true,
		URLNormalizationEnabled:    true,
		StripCommentCount:          false,
		MaxTTL:                     72 * time.Hour,
		OutputEncoding:             "utf-8",
		GeneratorName:              "feedcanon",
		GeneratorHref:              "https://github.com/feedcanon/feedcanon",
		UserAgent:                  "feedcanon/1.0",
	}
}

// OptionsFromMap applies a string-keyed option map over the defaults.
// An unrecognized key is a contract violation and fails loudly.
func OptionsFromMap(m map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	for key, value := range m {
		switch key {
		case "tidy_enabled":
			opts.TidyEnabled = toBool(value)
		case "sanitize_with_nofollow":
			opts.SanitizeWithNofollow = toBool(value)
		case "timestamp_estimation_enabled":
			opts.TimestampEstimationEnabled = toBool(value)
		case "url_normalization_enabled":
			opts.URLNormalizationEnabled = toBool(value)
		case "strip_comment_count":
			opts.StripCommentCount = toBool(value)
		case "expand_tabs":
			opts.ExpandTabs = toBool(value)
		case "max_ttl":
			d, err := toDuration(value)
			if err != nil {
				return opts, &coreerrors.ContractError{
					Contract: "OptionsFromMap",
					Message:  fmt.Sprintf("max_ttl: %v", err),
				}
			}
			opts.MaxTTL = d
		case "output_encoding":
			opts.OutputEncoding = fmt.Sprintf("%v", value)
		case "generator_name":
			opts.GeneratorName = fmt.Sprintf("%v", value)
		case "generator_href":
			opts.GeneratorHref = fmt.Sprintf("%v", value)
		case "user_agent":
			opts.UserAgent = fmt.Sprintf("%v", value)
		default:
			return opts, &coreerrors.ContractError{
				Contract: "OptionsFromMap",
				Message:  fmt.Sprintf("unrecognized option key %q", key),
			}
		}
	}
	return opts, nil
}

func toBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case int:
		return t != 0
	}
	return false
}

func toDuration(v interface{}) (time.Duration, error) {
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case string:
		return time.ParseDuration(t)
	case int:
		return time.Duration(t) * time.Second, nil
	case float64:
		return time.Duration(t * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("unsupported duration value %v", v)
}

func (o *Options) textOptions() textnorm.Options {
	return textnorm.Options{
		TidyEnabled: o.TidyEnabled,
		Tidy:        o.Tidy,
		Nofollow:    o.SanitizeWithNofollow,
		ExpandTabs:  o.ExpandTabs,
	}
}

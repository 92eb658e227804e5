package metadata

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is sent when no usable locale is configured.
const DefaultLanguage = "en-US"

// NormalizeLanguage turns a locale such as "en", "pt_br" or "fra" into the
// "xx-YY" form TMDB expects. A missing region becomes US.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLanguage
	}
	base, conf := tag.Base()
	if conf == language.No {
		return DefaultLanguage
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return base.String() + "-US"
	}
	return base.String() + "-" + region.String()
}

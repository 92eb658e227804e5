package catalog

import (
	"strings"

	"golang.org/x/text/language"

	"cinecontext/models"
)

// FormatDate renders a provider date for display. US-region locales get
// "Jan 2, 2006", everything else "2 Jan 2006". Partial dates keep their
// precision; unparsable input renders "TBA".
func FormatDate(date, locale string) string {
	t, layout, ok := parseDate(date)
	if !ok {
		return models.YearTBA
	}
	switch layout {
	case "2006":
		return t.Format("2006")
	case "2006-01":
		return t.Format("Jan 2006")
	}
	if usesMonthFirst(locale) {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("2 Jan 2006")
}

func usesMonthFirst(locale string) bool {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return true
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return true
	}
	region, _ := tag.Region()
	return region.String() == "US"
}

// Package translate renders user-facing messages through a locale-aware
// printer, so errors and diagnostics follow the user's language settings.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LANG_OVERRIDE names the environment variable forcing a message locale.
const LANG_OVERRIDE = "KAPU_LANG"

var printer *message.Printer

func init() {
	printer = message.NewPrinter(Match(userLocales()...))
}

// userLocales returns the preferred locales, most preferred first.
func userLocales() (locales []string) {
	if lang, ok := os.LookupEnv(LANG_OVERRIDE); ok && len(lang) != 0 {
		return []string{lang}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("konsolid8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

// Match returns the best language tag for a list of locale names.
func Match(locales ...string) language.Tag {
	return message.MatchLanguage(locales...)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

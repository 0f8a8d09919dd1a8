package adapter

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale holds the lookup tables a field needs to format and edit dates in
// one language. Weekday tables start on Sunday regardless of WeekStart.
type Locale struct {
	Tag  language.Tag
	Name string

	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string
	WeekdaysShort [7]string
	WeekdaysMin   [7]string
	// Meridiem holds the before-noon and after-noon strings.
	Meridiem [2]string

	WeekStart time.Weekday
	// Digits replaces 0-9 when non-nil.
	Digits []rune
	RTL    bool

	// Formats maps localized meta tokens (LT, LTS, L, LL, LLL, LLLL) to
	// format strings. Values may reference other meta tokens.
	Formats map[string]string

	Ordinal func(n int) string
}

func englishOrdinal(n int) string {
	s := strconv.Itoa(n)
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return s + "th"
	case n%10 == 1:
		return s + "st"
	case n%10 == 2:
		return s + "nd"
	case n%10 == 3:
		return s + "rd"
	}
	return s + "th"
}

var (
	LocaleEN = &Locale{
		Tag:           language.AmericanEnglish,
		Name:          "en",
		Months:        [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthsShort:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		WeekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		WeekdaysMin:   [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
		Meridiem:      [2]string{"AM", "PM"},
		WeekStart:     time.Sunday,
		Formats: map[string]string{
			"LT":   "h:mm A",
			"LTS":  "h:mm:ss A",
			"L":    "MM/DD/YYYY",
			"LL":   "MMMM D, YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd, LL LT",
		},
		Ordinal: englishOrdinal,
	}

	LocaleENGB = &Locale{
		Tag:           language.BritishEnglish,
		Name:          "en-GB",
		Months:        LocaleEN.Months,
		MonthsShort:   LocaleEN.MonthsShort,
		Weekdays:      LocaleEN.Weekdays,
		WeekdaysShort: LocaleEN.WeekdaysShort,
		WeekdaysMin:   LocaleEN.WeekdaysMin,
		Meridiem:      [2]string{"am", "pm"},
		WeekStart:     time.Monday,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd, LL LT",
		},
		Ordinal: englishOrdinal,
	}

	LocaleFR = &Locale{
		Tag:           language.French,
		Name:          "fr",
		Months:        [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		MonthsShort:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		Weekdays:      [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		WeekdaysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		WeekdaysMin:   [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
		Meridiem:      [2]string{"AM", "PM"},
		WeekStart:     time.Monday,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd LL LT",
		},
		Ordinal: func(n int) string {
			if n == 1 {
				return "1er"
			}
			return strconv.Itoa(n)
		},
	}

	LocaleDE = &Locale{
		Tag:           language.German,
		Name:          "de",
		Months:        [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		MonthsShort:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		Weekdays:      [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		WeekdaysShort: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
		WeekdaysMin:   [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		Meridiem:      [2]string{"AM", "PM"},
		WeekStart:     time.Monday,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD.MM.YYYY",
			"LL":   "D. MMMM YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd, LL LT",
		},
		Ordinal: func(n int) string { return strconv.Itoa(n) + "." },
	}

	LocaleES = &Locale{
		Tag:           language.Spanish,
		Name:          "es",
		Months:        [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		MonthsShort:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
		Weekdays:      [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		WeekdaysShort: [7]string{"dom.", "lun.", "mar.", "mié.", "jue.", "vie.", "sáb."},
		WeekdaysMin:   [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
		Meridiem:      [2]string{"AM", "PM"},
		WeekStart:     time.Monday,
		Formats: map[string]string{
			"LT":   "H:mm",
			"LTS":  "H:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D [de] MMMM [de] YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd, LL LT",
		},
		Ordinal: func(n int) string { return strconv.Itoa(n) + "º" },
	}

	LocaleAR = &Locale{
		Tag:           language.Arabic,
		Name:          "ar",
		Months:        [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
		MonthsShort:   [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
		Weekdays:      [7]string{"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
		WeekdaysShort: [7]string{"أحد", "إثنين", "ثلاثاء", "أربعاء", "خميس", "جمعة", "سبت"},
		WeekdaysMin:   [7]string{"ح", "ن", "ث", "ر", "خ", "ج", "س"},
		Meridiem:      [2]string{"ص", "م"},
		WeekStart:     time.Saturday,
		Digits:        []rune("\u0660\u0661\u0662\u0663\u0664\u0665\u0666\u0667\u0668\u0669"),
		RTL:           true,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd D MMMM YYYY LT",
		},
		Ordinal: strconv.Itoa,
	}

	LocaleFA = &Locale{
		Tag:           language.Persian,
		Name:          "fa",
		Months:        [12]string{"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن", "ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر"},
		MonthsShort:   [12]string{"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن", "ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر"},
		Weekdays:      [7]string{"یکشنبه", "دوشنبه", "سه\u200cشنبه", "چهارشنبه", "پنجشنبه", "جمعه", "شنبه"},
		WeekdaysShort: [7]string{"یکشنبه", "دوشنبه", "سه\u200cشنبه", "چهارشنبه", "پنجشنبه", "جمعه", "شنبه"},
		WeekdaysMin:   [7]string{"ی", "د", "س", "چ", "پ", "ج", "ش"},
		Meridiem:      [2]string{"قبل از ظهر", "بعد از ظهر"},
		WeekStart:     time.Saturday,
		Digits:        []rune("\u06f0\u06f1\u06f2\u06f3\u06f4\u06f5\u06f6\u06f7\u06f8\u06f9"),
		RTL:           true,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "LL LT",
			"LLLL": "dddd, LL LT",
		},
		Ordinal: func(n int) string { return strconv.Itoa(n) + "م" },
	}
)

// Locales lists the supported locales; the first entry is the fallback.
var Locales = []*Locale{LocaleEN, LocaleENGB, LocaleFR, LocaleDE, LocaleES, LocaleAR, LocaleFA}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(Locales))
	for _, l := range Locales {
		tags = append(tags, l.Tag)
	}
	return language.NewMatcher(tags)
}()

// LookupLocale resolves a BCP-47 tag ("fr-CA", "en_GB", "ar") to the closest
// supported locale. Unknown or malformed tags resolve to English.
func LookupLocale(tag string) *Locale {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return LocaleEN
	}
	t, err := language.Parse(tag)
	if err != nil {
		return LocaleEN
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(Locales) {
		return LocaleEN
	}
	return Locales[idx]
}

// Lower folds s with the locale's casing rules. Casers are stateful, so a
// fresh one is used per call.
func (l *Locale) Lower(s string) string {
	return cases.Lower(l.Tag).String(s)
}

func (l *Locale) Upper(s string) string {
	return cases.Upper(l.Tag).String(s)
}

func (l *Locale) ordinal(n int) string {
	if l.Ordinal == nil {
		return strconv.Itoa(n)
	}
	return l.Ordinal(n)
}

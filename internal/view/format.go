package view

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateLayouts форматы даты и времени для поддерживаемых локалей.
// Первая локаль используется, если подходящей не нашлось.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{tag: language.AmericanEnglish, layout: "Jan 2, 2006, 03:04 PM"},
	{tag: language.BritishEnglish, layout: "2 Jan 2006, 15:04"},
	{tag: language.German, layout: "02.01.2006, 15:04"},
	{tag: language.French, layout: "02/01/2006 15:04"},
	{tag: language.Russian, layout: "02.01.2006, 15:04"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(dateLayouts))
	for _, l := range dateLayouts {
		tags = append(tags, l.tag)
	}
	return language.NewMatcher(tags)
}()

// Formatter форматирует числа и даты для отображения с учетом локали и часового пояса
type Formatter struct {
	printer    *message.Printer
	location   *time.Location
	dateLayout string
}

func NewFormatter(locale string, timezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("display locale %q: %w", locale, err)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("display timezone %q: %w", timezone, err)
	}
	_, idx, _ := dateMatcher.Match(tag)
	return &Formatter{
		printer:    message.NewPrinter(tag),
		location:   loc,
		dateLayout: dateLayouts[idx].layout,
	}, nil
}

// Date форматирует unix-время в секундах
func (f *Formatter) Date(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).In(f.location).Format(f.dateLayout)
}

// Number форматирует целое число с разделителями разрядов
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

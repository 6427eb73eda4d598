// Package format renders interview lists grouped by how far away each date
// is from today.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/WST-T/pweaseHiredMe/internal/validate"
	"github.com/WST-T/pweaseHiredMe/pkg/model"
)

// bucket classes; buckets sort by class, then date ascending.
const (
	classToday = iota
	classTomorrow
	classFuture
	classPast
)

type bucket struct {
	label   string
	class   int
	date    time.Time
	records []model.Interview
}

// List renders interviews grouped under Today / Tomorrow / dated headers.
// "Today" is the calendar date of now (the caller passes a clock reading
// already in the bot's time zone). Records keep the order they arrive in,
// which the store has already sorted by (date, time). includeOwner adds the
// owner name per line for the admin view.
func List(interviews []model.Interview, title string, includeOwner bool, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var buckets []*bucket
	index := make(map[string]*bucket)

	for _, iv := range interviews {
		date, ok := validate.ParseDate(iv.Date)
		if !ok {
			// The store never persists an unparseable date; skip
			// rather than render garbage if one slips in.
			continue
		}
		offset := int(date.Sub(today).Hours() / 24)

		var label string
		class := classFuture
		switch {
		case offset == 0:
			label = "**Today** 🚨"
			class = classToday
		case offset == 1:
			label = "**Tomorrow** ⏳"
			class = classTomorrow
		default:
			relative := fmt.Sprintf("in %d days", offset)
			if offset < 0 {
				relative = fmt.Sprintf("%d days ago", -offset)
				class = classPast
			}
			label = fmt.Sprintf("**%s** (%s) 📅", date.Format("Monday, Jan 02"), relative)
		}

		b, ok := index[label]
		if !ok {
			b = &bucket{label: label, class: class, date: date}
			index[label] = b
			buckets = append(buckets, b)
		}
		b.records = append(b.records, iv)
	}

	// Today and Tomorrow pin first, then future buckets ascending by date,
	// then past buckets ascending by date.
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].class != buckets[j].class {
			return buckets[i].class < buckets[j].class
		}
		return buckets[i].date.Before(buckets[j].date)
	})

	lines := []string{fmt.Sprintf("**%s**", title)}
	for _, b := range buckets {
		lines = append(lines, "\n"+b.label)
		for _, iv := range b.records {
			lines = append(lines, formatLine(iv, includeOwner))
		}
	}
	return strings.Join(lines, "\n")
}

// formatLine renders one record. A time-shaped category with no better time
// information is treated as the time and the category falls back to the
// default label, mirroring the store's repair rule at render time.
func formatLine(iv model.Interview, includeOwner bool) string {
	timeInfo := ""
	category := iv.Category
	typeTimeShaped := validate.TimeShaped(category)

	switch {
	case iv.HasTime():
		timeInfo = fmt.Sprintf(" at %s", iv.Time)
		if typeTimeShaped {
			category = model.DefaultCategory
		}
	case typeTimeShaped:
		timeInfo = fmt.Sprintf(" at %s", category)
		category = model.DefaultCategory
	}

	line := fmt.Sprintf("`ID %d`", iv.ID)
	if includeOwner {
		line += fmt.Sprintf(" **%s**", iv.OwnerName)
	}
	line += fmt.Sprintf("%s %s: %s", timeInfo, category, iv.Description)
	return line
}

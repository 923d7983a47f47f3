package campusinfo

import (
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Event is one scheduled campus event.
type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Info is the static informational data exposed to the assistant. Values are
// fixed defaults, optionally overridden from a workbook at startup.
type Info struct {
	CafeteriaTimings string
	LibraryHours     string
	Events           []Event
}

func Defaults() Info {
	return Info{
		CafeteriaTimings: "Mon-Fri 8am-8pm, Sat 9am-5pm, Sun closed",
		LibraryHours:     "Mon-Sun 8am-10pm",
		Events: []Event{
			{Title: "Orientation", Date: "2025-09-25"},
			{Title: "Hackathon Finals", Date: "2025-10-05"},
		},
	}
}

// Load returns Defaults overlaid with whatever the workbook provides. A
// missing or unreadable file is a warning, not an error.
func Load(path string) Info {
	info := Defaults()
	if path == "" {
		return info
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		log.Printf("[campusinfo] %s: %v (using defaults)", path, err)
		return info
	}
	if loaded.CafeteriaTimings != "" {
		info.CafeteriaTimings = loaded.CafeteriaTimings
	}
	if loaded.LibraryHours != "" {
		info.LibraryHours = loaded.LibraryHours
	}
	if len(loaded.Events) > 0 {
		info.Events = loaded.Events
	}
	return info
}

// LoadFromFile reads an xlsx workbook. Sheet "Hours" holds name/value rows
// (cafeteria, library); sheet "Events" holds title/date rows. The first row of
// each sheet is a header.
func LoadFromFile(path string) (Info, error) {
	var info Info
	f, err := excelize.OpenFile(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	if rows, err := f.GetRows("Hours"); err == nil {
		for i, row := range rows {
			if i == 0 || len(row) < 2 {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(row[0])) {
			case "cafeteria":
				info.CafeteriaTimings = strings.TrimSpace(row[1])
			case "library":
				info.LibraryHours = strings.TrimSpace(row[1])
			}
		}
	}
	if rows, err := f.GetRows("Events"); err == nil {
		for i, row := range rows {
			if i == 0 || len(row) < 2 {
				continue
			}
			title := strings.TrimSpace(row[0])
			if title == "" {
				continue
			}
			info.Events = append(info.Events, Event{Title: title, Date: strings.TrimSpace(row[1])})
		}
	}
	return info, nil
}

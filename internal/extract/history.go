package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// strategy reads career entries relative to the History heading
type strategy struct {
	name string
	run  func(doc *goquery.Document, header *goquery.Selection) []player.RawEntry
}

var strategies = []strategy{
	{name: "table", run: fromTable},
	{name: "container", run: fromContainer},
	{name: "text", run: fromText},
}

// CareerHistory returns the raw career entries of a player page, or nil when
// the page has no History heading or no strategy finds entries
func (p *Parser) CareerHistory(doc *goquery.Document) []player.RawEntry {
	header := findHistoryHeader(doc)
	if header == nil {
		p.log().Debug("No History section found", nil)
		return nil
	}

	for _, s := range strategies {
		if entries := s.run(doc, header); len(entries) > 0 {
			p.log().Debug("Extracted career history", logger.Fields{
				"strategy": s.name,
				"entries":  len(entries),
			})
			return entries
		}
	}
	return nil
}

// findHistoryHeader returns the first heading-like element whose whole text is
// "History"
func findHistoryHeader(doc *goquery.Document) *goquery.Selection {
	var header *goquery.Selection
	doc.Find("h2, h3, div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(text(s), "history") {
			header = s
			return false
		}
		return true
	})
	return header
}

// following returns the first element matching selector that comes after
// header in document order
func following(doc *goquery.Document, header *goquery.Selection, selector string) *goquery.Selection {
	order := documentOrder(doc.Get(0))
	pos := order[header.Get(0)]

	var found *goquery.Selection
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if order[s.Get(0)] > pos {
			found = s
			return false
		}
		return true
	})
	return found
}

// fromTable reads date and team from the first two cells of each row of the
// next table. Rows whose date cell has no year are header or filler rows.
func fromTable(doc *goquery.Document, header *goquery.Selection) []player.RawEntry {
	table := following(doc, header, "table")
	if table == nil {
		return nil
	}

	var entries []player.RawEntry
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td, th")
		if cells.Length() < 2 {
			return
		}
		date := text(cells.Eq(0))
		if !yearPattern.MatchString(date) {
			return
		}
		entries = append(entries, player.RawEntry{
			DateRange: date,
			Team:      text(cells.Eq(1)),
		})
	})
	return entries
}

// fromContainer scans the next div or list for "date range, team" runs
func fromContainer(doc *goquery.Document, header *goquery.Selection) []player.RawEntry {
	container := following(doc, header, "div, ul")
	if container == nil {
		return nil
	}
	return entriesFromText(text(container))
}

// fromText scans the header's following siblings up to the next section
func fromText(_ *goquery.Document, header *goquery.Selection) []player.RawEntry {
	var entries []player.RawEntry
	header.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is("h2, h3") {
			return false
		}
		entries = append(entries, entriesFromText(text(s))...)
		return true
	})
	return entries
}

func entriesFromText(s string) []player.RawEntry {
	var entries []player.RawEntry
	for _, pair := range splitRanges(s) {
		entries = append(entries, player.RawEntry{DateRange: pair[0], Team: pair[1]})
	}
	return entries
}

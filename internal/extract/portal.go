package extract

import (
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// Portal parses a regional player portal. Country headings (h3, h4) apply to
// the player tables that follow them; a player table is one whose header row
// has both "ID" and "Real Name". An empty region is looked up per country.
func (p *Parser) Portal(r io.Reader, region string) ([]*player.Player, error) {
	doc, err := Document(r)
	if err != nil {
		return nil, err
	}

	players := make([]*player.Player, 0)
	country := "Unknown"

	doc.Find("h3, h4, table").Each(func(_ int, s *goquery.Selection) {
		if !s.Is("table") {
			country = cleanCountry(text(s))
			return
		}
		if !isPlayerTable(s) {
			return
		}

		s.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if pl := p.portalRow(row, country, region); pl != nil {
				players = append(players, pl)
			}
		})
	})

	p.log().Info("Parsed player portal", logger.Fields{
		"region":  region,
		"players": len(players),
	})
	return players, nil
}

func (p *Parser) portalRow(row *goquery.Selection, country, region string) *player.Player {
	cells := row.ChildrenFiltered("td")
	if cells.Length() < 3 {
		return nil
	}

	id := text(cells.Eq(0))
	if id == "" {
		return nil
	}
	href, _ := cells.Eq(0).Find("a").First().Attr("href")

	return &player.Player{
		ID:          id,
		RealName:    text(cells.Eq(1)),
		Country:     country,
		CurrentTeam: text(cells.Eq(2)),
		Status:      rowStatus(row),
		URL:         p.resolve(href),
		Region:      regionOr(region, country),
	}
}

func isPlayerTable(table *goquery.Selection) bool {
	var hasID, hasName bool
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		switch text(th) {
		case "ID":
			hasID = true
		case "Real Name":
			hasName = true
		}
	})
	return hasID && hasName
}

// rowStatus reads the lifecycle status from the row's background colour
func rowStatus(row *goquery.Selection) player.Status {
	style, _ := row.Attr("style")
	style = strings.ToLower(style)

	switch {
	case strings.Contains(style, "gray") || strings.Contains(style, "#d3d3d3"):
		return player.StatusRetired
	case strings.Contains(style, "blue") || strings.Contains(style, "#add8e6"):
		return player.StatusInactive
	default:
		return player.StatusActive
	}
}

// cleanCountry strips flag icons and punctuation preceding the country name
func cleanCountry(s string) string {
	return strings.TrimSpace(strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

// Category parses a wiki category listing of player pages. Only the ID, URL,
// country and region are known at this point; the rest comes from each
// player's own page. An empty region is looked up from country.
func (p *Parser) Category(r io.Reader, country, region string) ([]*player.Player, error) {
	doc, err := Document(r)
	if err != nil {
		return nil, err
	}

	players := make([]*player.Player, 0)
	seen := make(map[string]bool)

	doc.Find("div#mw-pages a, div.mw-category-group a").Each(func(_ int, a *goquery.Selection) {
		id := text(a)
		href, _ := a.Attr("href")
		if id == "" || href == "" || strings.Contains(href, "/Category:") || seen[id] {
			return
		}
		seen[id] = true

		players = append(players, &player.Player{
			ID:      id,
			Country: country,
			Status:  player.StatusActive,
			URL:     p.resolve(href),
			Region:  regionOr(region, country),
		})
	})

	p.log().Info("Parsed category page", logger.Fields{
		"country": country,
		"players": len(players),
	})
	return players, nil
}

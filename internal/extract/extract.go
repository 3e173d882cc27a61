package extract

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// DefaultBaseURL is the wiki that player pages are downloaded from
const DefaultBaseURL = "https://liquipedia.net"

// Parser turns wiki HTML into player records
type Parser struct {
	// BaseURL resolves relative player links. Empty leaves links as found.
	BaseURL string

	Log *logger.Logger
}

// New creates a Parser resolving links against baseURL
func New(baseURL string) *Parser {
	return &Parser{BaseURL: baseURL}
}

// Document parses r into a goquery document
func Document(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse HTML")
	}
	return doc, nil
}

// PlayerPage fills p from a downloaded player page: career history always,
// roles and birth date when the infobox has them, and country only when p has
// none yet.
func (p *Parser) PlayerPage(r io.Reader, pl *player.Player) error {
	doc, err := Document(r)
	if err != nil {
		return eris.Wrapf(err, "extract: player page %s", pl.ID)
	}

	pl.Career = p.CareerHistory(doc)

	details := Infobox(doc)
	if len(details.Roles) > 0 {
		pl.Roles = strings.Join(details.Roles, ", ")
	}
	if details.BirthDate != "" {
		pl.BirthDate = details.BirthDate
	}
	if pl.Country == "" {
		pl.Country = details.Nationality
	}
	if details.Status != "" {
		pl.Status = player.ParseStatus(details.Status)
	}
	if pl.Region == "" {
		pl.Region = RegionFor(pl.Country)
	}

	p.log().Debug("Parsed player page", logger.Fields{
		"player_id": pl.ID,
		"entries":   len(pl.Career),
	})
	return nil
}

func (p *Parser) resolve(href string) string {
	if href == "" || p.BaseURL == "" {
		return href
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (p *Parser) log() *logger.Logger {
	if p.Log == nil {
		return logger.Default()
	}
	return p.Log
}

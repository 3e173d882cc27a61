package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Details holds the infobox fields of a player page
type Details struct {
	Roles       []string
	BirthDate   string
	Nationality string
	Status      string

	// Other holds remaining labels, lowercased with spaces as underscores
	Other map[string]string
}

// Infobox reads the label/value rows of the page's infobox
func Infobox(doc *goquery.Document) Details {
	d := Details{Other: make(map[string]string)}

	doc.Find("div.infobox-wrapper div.infobox-cell-2").Each(func(_ int, row *goquery.Selection) {
		label := row.Find("div.infobox-header").First()
		value := row.Find("div.infobox-description").First()
		if label.Length() == 0 || value.Length() == 0 {
			return
		}

		key := strings.ToLower(strings.TrimSuffix(text(label), ":"))
		val := text(value)

		switch {
		case strings.Contains(key, "role"):
			for _, r := range strings.Split(val, ",") {
				if r = strings.TrimSpace(r); r != "" {
					d.Roles = append(d.Roles, r)
				}
			}
		case strings.Contains(key, "birth"):
			d.BirthDate = val
		case strings.Contains(key, "nationality") || key == "country":
			d.Nationality = val
		case key == "status":
			d.Status = val
		default:
			d.Other[strings.ReplaceAll(key, " ", "_")] = val
		}
	})

	return d
}

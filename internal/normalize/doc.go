// Package normalize converts scraped career text into structured fragments.
//
// A career line on the wiki is a free-text date range such as
// "2020-04-13 — 2020-07-02" paired with a team label such as
// "Team X (Inactive)". Parse splits that pair into start and end dates, a
// cleaned team name and a stint status. Every input string is accepted; the
// only signal Parse gives is whether the date range contains a year at all.
package normalize

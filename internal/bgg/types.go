package bgg

import "encoding/xml"

// SearchResult represents a single candidate item from the search endpoint.
type SearchResult struct {
	ID   int64
	Name string
	Year string
}

// PollBucket aggregates suggested-player-count votes for one candidate count.
type PollBucket struct {
	NumPlayers     string
	Best           int
	Recommended    int
	NotRecommended int
}

// TotalVotes returns the combined vote count for the bucket.
func (b PollBucket) TotalVotes() int {
	return b.Best + b.Recommended + b.NotRecommended
}

// Thing is the parsed payload of the thing endpoint for a single item.
type Thing struct {
	ID            int64
	PrimaryName   string
	Year          string
	ImageURL      string
	MinPlayers    int
	MaxPlayers    int
	MinPlaytime   int
	MaxPlaytime   int
	AverageWeight float64
	PlayerPoll    []PollBucket
	Mechanics     []string
	Categories    []string
}

// Wire formats. BGG encodes nearly every scalar as a value attribute on a
// dedicated element.

type valueAttr struct {
	Value string `xml:"value,attr"`
}

type searchEnvelope struct {
	XMLName xml.Name     `xml:"items"`
	Items   []searchItem `xml:"item"`
}

type searchItem struct {
	ID    string     `xml:"id,attr"`
	Type  string     `xml:"type,attr"`
	Names []nameElem `xml:"name"`
	Year  valueAttr  `xml:"yearpublished"`
}

type nameElem struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type thingEnvelope struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

type thingItem struct {
	ID          string     `xml:"id,attr"`
	Names       []nameElem `xml:"name"`
	Year        valueAttr  `xml:"yearpublished"`
	Image       string     `xml:"image"`
	MinPlayers  valueAttr  `xml:"minplayers"`
	MaxPlayers  valueAttr  `xml:"maxplayers"`
	MinPlaytime valueAttr  `xml:"minplaytime"`
	MaxPlaytime valueAttr  `xml:"maxplaytime"`
	Links       []linkElem `xml:"link"`
	Polls       []pollElem `xml:"poll"`
	Statistics  *statsElem `xml:"statistics"`
}

type linkElem struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type pollElem struct {
	Name    string        `xml:"name,attr"`
	Results []pollResults `xml:"results"`
}

type pollResults struct {
	NumPlayers string       `xml:"numplayers,attr"`
	Result     []pollResult `xml:"result"`
}

type pollResult struct {
	Value    string `xml:"value,attr"`
	NumVotes int    `xml:"numvotes,attr"`
}

type statsElem struct {
	Ratings ratingsElem `xml:"ratings"`
}

type ratingsElem struct {
	AverageWeight valueAttr `xml:"averageweight"`
}

package omdb

// envelope carries the fields every OMDb payload shares
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

// failed reports an explicit negative result ({"Response":"False"})
func (e envelope) failed() bool {
	return e.Response == "False"
}

// SearchResponse is the payload of ?s=<query>
type SearchResponse struct {
	envelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults,omitempty"`
}

// SearchItem is one hit of a search
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type,omitempty"`
	Poster string `json:"Poster"`
}

// DetailResponse is the payload of ?i=<id>
type DetailResponse struct {
	envelope
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer,omitempty"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type,omitempty"`
}

package entities

// GenreCount is one row of the genre breakdown.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

// LibraryStats is the tally shown on the statistics view.
// Genres is ordered by count descending, then genre name.
type LibraryStats struct {
	Total  int64        `json:"total"`
	Read   int64        `json:"read"`
	Genres []GenreCount `json:"genres"`
}

// PercentageRead returns Read/Total as a percentage, or 0 for an empty library.
func (s LibraryStats) PercentageRead() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Read) / float64(s.Total) * 100
}

// UnspecifiedGenre labels books stored without a genre.
const UnspecifiedGenre = "Unspecified"

// GenreLabel is how a genre is shown to the user.
func GenreLabel(genre string) string {
	if genre == "" {
		return UnspecifiedGenre
	}
	return genre
}

package domain

import (
	_ "embed"
	"encoding/csv"
	"strings"
	"sync"
)

//go:embed data/genre.csv
var genreCSV string

var (
	riteOnce    sync.Once
	genreToRite map[string]string
)

// RiteForGenre returns the rite ("office" or "mass") a genre code belongs to.
func RiteForGenre(genre string) (string, bool) {
	riteOnce.Do(loadGenreTable)
	rite, ok := genreToRite[genre]
	return rite, ok
}

func loadGenreTable() {
	genreToRite = make(map[string]string)
	records, err := csv.NewReader(strings.NewReader(genreCSV)).ReadAll()
	if err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		genreToRite[rec[0]] = rec[1]
	}
}

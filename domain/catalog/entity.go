// Package catalog defines the persistent series/episode model.
package catalog

import (
	"encoding/json"
	"time"
)

// Series is a TV series in the catalog. Genre, Actors and Tags are stored
// as JSON-encoded arrays in text columns; Rating is stored multiplied by
// ten so a single decimal survives the integer column.
type Series struct {
	ID            string    `gorm:"primaryKey;size:50" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	EnglishTitle  string    `gorm:"size:200" json:"englishTitle"`
	Description   string    `gorm:"type:text" json:"description"`
	CoverImage    string    `gorm:"size:500" json:"coverImage"`
	BackdropImage string    `gorm:"size:500" json:"backdropImage"`
	TotalEpisodes int       `gorm:"default:0" json:"totalEpisodes"`
	ReleaseYear   int       `json:"releaseYear"`
	Genre         string    `gorm:"type:text" json:"-"`
	Rating        int       `gorm:"default:0" json:"-"`
	Views         string    `gorm:"size:50" json:"views"`
	Status        string    `gorm:"size:50" json:"status"`
	Director      string    `gorm:"size:200" json:"director"`
	Actors        string    `gorm:"type:text" json:"-"`
	Region        string    `gorm:"size:100" json:"region"`
	Language      string    `gorm:"size:100" json:"language"`
	UpdateTime    string    `gorm:"size:200" json:"updateTime"`
	Tags          string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenreList decodes the Genre column.
func (s *Series) GenreList() []string { return decodeList(s.Genre) }

// SetGenreList encodes values into the Genre column.
func (s *Series) SetGenreList(v []string) { s.Genre = encodeList(v) }

// ActorsList decodes the Actors column.
func (s *Series) ActorsList() []string { return decodeList(s.Actors) }

// SetActorsList encodes values into the Actors column.
func (s *Series) SetActorsList(v []string) { s.Actors = encodeList(v) }

// TagsList decodes the Tags column.
func (s *Series) TagsList() []string { return decodeList(s.Tags) }

// SetTagsList encodes values into the Tags column.
func (s *Series) SetTagsList(v []string) { s.Tags = encodeList(v) }

// Episode is a single episode of a series. VideoURL is indexed so the
// watch-room playback comparison can resolve a URL back to its episode.
type Episode struct {
	ID          string    `gorm:"primaryKey;size:50" json:"id"`
	SeriesID    string    `gorm:"size:50;index;not null" json:"series_id"`
	Episode     int       `gorm:"not null" json:"episode"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `gorm:"size:500;index;not null" json:"videoUrl"`
	Duration    string    `gorm:"size:20" json:"duration"`
	CoverImage  string    `gorm:"size:500" json:"cover_image"`
	IsVip       bool      `gorm:"default:false" json:"isVip"`
	CreatedAt   time.Time `json:"created_at"`
}

func decodeList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeList(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

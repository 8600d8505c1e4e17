package catalog

import (
	"time"

	"github.com/samber/lo"
	domain "github.com/zkeq/Self-Cinema/domain/catalog"
)

// SeriesInput carries the writable fields of a series. Rating is a
// 0-10 decimal; it is stored multiplied by ten.
type SeriesInput struct {
	Title         string   `json:"title"`
	EnglishTitle  string   `json:"englishTitle,omitempty"`
	Description   string   `json:"description,omitempty"`
	CoverImage    string   `json:"coverImage,omitempty"`
	BackdropImage string   `json:"backdropImage,omitempty"`
	TotalEpisodes int      `json:"totalEpisodes"`
	ReleaseYear   int      `json:"releaseYear,omitempty"`
	Genre         []string `json:"genre"`
	Rating        float64  `json:"rating"`
	Views         string   `json:"views"`
	Status        string   `json:"status"`
	Director      string   `json:"director,omitempty"`
	Actors        []string `json:"actors"`
	Region        string   `json:"region,omitempty"`
	Language      string   `json:"language,omitempty"`
	UpdateTime    string   `json:"updateTime,omitempty"`
	Tags          []string `json:"tags"`
}

// SeriesView is the read model of a series.
type SeriesView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	EnglishTitle  string    `json:"englishTitle"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"coverImage"`
	BackdropImage string    `json:"backdropImage"`
	TotalEpisodes int       `json:"totalEpisodes"`
	ReleaseYear   int       `json:"releaseYear"`
	Genre         []string  `json:"genre"`
	Rating        float64   `json:"rating"`
	Views         string    `json:"views"`
	Status        string    `json:"status"`
	Director      string    `json:"director"`
	Actors        []string  `json:"actors"`
	Region        string    `json:"region"`
	Language      string    `json:"language"`
	UpdateTime    string    `json:"updateTime"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// EpisodeInput carries the writable fields of an episode.
type EpisodeInput struct {
	SeriesID    string `json:"series_id"`
	Episode     int    `json:"episode"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Duration    string `json:"duration,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	IsVip       bool   `json:"isVip"`
}

// EpisodeView is the read model of an episode.
type EpisodeView struct {
	ID          string    `json:"id"`
	SeriesID    string    `json:"series_id"`
	Episode     int       `json:"episode"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	Duration    string    `json:"duration"`
	CoverImage  string    `json:"cover_image"`
	IsVip       bool      `json:"isVip"`
	CreatedAt   time.Time `json:"created_at"`
}

// Request/response types for the module's request-reply services.

type CreateSeriesRequest struct {
	Series SeriesInput `json:"series"`
}

type SeriesResponse struct {
	Series SeriesView `json:"series"`
}

type ListSeriesRequest struct{}

type ListSeriesResponse struct {
	Series []SeriesView `json:"series"`
}

type GetSeriesRequest struct {
	ID string `json:"id"`
}

type UpdateSeriesRequest struct {
	ID     string      `json:"id"`
	Series SeriesInput `json:"series"`
}

type DeleteSeriesRequest struct {
	ID string `json:"id"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type ListEpisodesRequest struct {
	SeriesID string `json:"series_id"`
}

type ListEpisodesResponse struct {
	Episodes []EpisodeView `json:"episodes"`
}

type GetEpisodeRequest struct {
	ID string `json:"id"`
}

type EpisodeResponse struct {
	Episode EpisodeView `json:"episode"`
}

type CreateEpisodeRequest struct {
	Episode EpisodeInput `json:"episode"`
}

type UpdateEpisodeRequest struct {
	ID      string       `json:"id"`
	Episode EpisodeInput `json:"episode"`
}

type DeleteEpisodeRequest struct {
	ID string `json:"id"`
}

type EpisodeByURLRequest struct {
	VideoURL string `json:"video_url"`
}

type EpisodeByURLResponse struct {
	Found   bool         `json:"found"`
	Episode *EpisodeView `json:"episode,omitempty"`
}

// seriesView maps a series entity to its read model.
func seriesView(s *domain.Series) SeriesView {
	return SeriesView{
		ID:            s.ID,
		Title:         s.Title,
		EnglishTitle:  s.EnglishTitle,
		Description:   s.Description,
		CoverImage:    s.CoverImage,
		BackdropImage: s.BackdropImage,
		TotalEpisodes: s.TotalEpisodes,
		ReleaseYear:   s.ReleaseYear,
		Genre:         s.GenreList(),
		Rating:        float64(s.Rating) / 10.0,
		Views:         s.Views,
		Status:        s.Status,
		Director:      s.Director,
		Actors:        s.ActorsList(),
		Region:        s.Region,
		Language:      s.Language,
		UpdateTime:    s.UpdateTime,
		Tags:          s.TagsList(),
		CreatedAt:     s.CreatedAt,
	}
}

// episodeView maps an episode entity to its read model.
func episodeView(e *domain.Episode) EpisodeView {
	return EpisodeView{
		ID:          e.ID,
		SeriesID:    e.SeriesID,
		Episode:     e.Episode,
		Title:       e.Title,
		Description: e.Description,
		VideoURL:    e.VideoURL,
		Duration:    e.Duration,
		CoverImage:  e.CoverImage,
		IsVip:       e.IsVip,
		CreatedAt:   e.CreatedAt,
	}
}

// seriesViews maps a slice of series entities.
func seriesViews(series []domain.Series) []SeriesView {
	return lo.Map(series, func(s domain.Series, _ int) SeriesView {
		return seriesView(&s)
	})
}

// episodeViews maps a slice of episode entities.
func episodeViews(episodes []domain.Episode) []EpisodeView {
	return lo.Map(episodes, func(e domain.Episode, _ int) EpisodeView {
		return episodeView(&e)
	})
}

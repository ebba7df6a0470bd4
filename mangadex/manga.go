package mangadex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

type (
	Manga     = Object[MangaAttributes]
	MangaData = Data[Manga]
	MangaPage = Page[MangaData]

	Tag     = Object[TagAttributes]
	TagData = Data[Tag]
)

type MangaAttributes struct {
	Title                  LocalizedString          `json:"title"`
	AltTitles              []LocalizedString        `json:"altTitles"`
	Description            LocalizedString          `json:"description"`
	Links                  map[string]string        `json:"links"`
	OriginalLanguage       string                   `json:"originalLanguage"`
	LastVolume             mo.Option[string]        `json:"lastVolume"`
	LastChapter            mo.Option[string]        `json:"lastChapter"`
	PublicationDemographic mo.Option[Demographic]   `json:"publicationDemographic"`
	Status                 mo.Option[MangaStatus]   `json:"status"`
	Year                   mo.Option[int]           `json:"year"`
	ContentRating          mo.Option[ContentRating] `json:"contentRating"`
	Tags                   []Tag                    `json:"tags"`
	Version                int                      `json:"version"`
	CreatedAt              time.Time                `json:"createdAt"`
	UpdatedAt              time.Time                `json:"updatedAt"`
}

type TagAttributes struct {
	Name        LocalizedString `json:"name"`
	Description LocalizedString `json:"description"`
	Group       string          `json:"group"`
	Version     int             `json:"version"`
}

// MangaRequest is the body of create and update calls.
type MangaRequest struct {
	Title                  LocalizedString   `json:"title"`
	AltTitles              []LocalizedString `json:"altTitles,omitempty"`
	Description            LocalizedString   `json:"description,omitempty"`
	Authors                []uuid.UUID       `json:"authors,omitempty"`
	Artists                []uuid.UUID       `json:"artists,omitempty"`
	Links                  map[string]string `json:"links,omitempty"`
	OriginalLanguage       string            `json:"originalLanguage,omitempty"`
	LastVolume             *string           `json:"lastVolume,omitempty"`
	LastChapter            *string           `json:"lastChapter,omitempty"`
	PublicationDemographic Demographic       `json:"publicationDemographic,omitempty"`
	Status                 MangaStatus       `json:"status,omitempty"`
	Year                   *int              `json:"year,omitempty"`
	ContentRating          ContentRating     `json:"contentRating,omitempty"`
	ModNotes               string            `json:"modNotes,omitempty"`
	Version                int               `json:"version"`
}

type MangaOrder struct {
	CreatedAt OrderType `url:"createdAt,omitempty"`
	UpdatedAt OrderType `url:"updatedAt,omitempty"`
}

// MangaQuery filters GET /manga.
type MangaQuery struct {
	Pagination
	Title                  string          `url:"title,omitempty"`
	Authors                []uuid.UUID     `url:"authors[],omitempty"`
	Artists                []uuid.UUID     `url:"artists[],omitempty"`
	Year                   *int            `url:"year,omitempty"`
	IncludedTags           []uuid.UUID     `url:"includedTags[],omitempty"`
	IncludedTagsMode       TagMode         `url:"includedTagsMode,omitempty"`
	ExcludedTags           []uuid.UUID     `url:"excludedTags[],omitempty"`
	ExcludedTagsMode       TagMode         `url:"excludedTagsMode,omitempty"`
	Status                 []MangaStatus   `url:"status[],omitempty"`
	OriginalLanguage       []string        `url:"originalLanguage[],omitempty"`
	PublicationDemographic []Demographic   `url:"publicationDemographic[],omitempty"`
	IDs                    []uuid.UUID     `url:"ids[],omitempty"`
	ContentRating          []ContentRating `url:"contentRating[],omitempty"`
	CreatedAtSince         time.Time       `url:"createdAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	UpdatedAtSince         time.Time       `url:"updatedAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	Order                  MangaOrder      `url:"order"`
}

// MangaReadingStatuses maps manga ids to the shelf they sit on.
type MangaReadingStatuses struct {
	Statuses map[uuid.UUID]ReadingStatus `json:"statuses"`
}

// MangaReadingStatusBody carries a single shelf.
type MangaReadingStatusBody struct {
	Status ReadingStatus `json:"status"`
}

type readMarkersQuery struct {
	IDs []uuid.UUID `url:"ids[]"`
}

type readingStatusQuery struct {
	Status ReadingStatus `url:"status,omitempty"`
}

// ReadMarkers is the list of chapter ids marked read.
type ReadMarkers struct {
	Data []uuid.UUID `json:"data"`
}

func (c *Client) ListManga(ctx context.Context, q MangaQuery) (MangaPage, error) {
	return Send[MangaPage](ctx, c, OpListManga.Endpoint().WithQuery(q))
}

func (c *Client) CreateManga(ctx context.Context, body MangaRequest) (MangaData, error) {
	return Call[MangaData](ctx, c, OpCreateManga.Endpoint().WithBody(body))
}

func (c *Client) GetManga(ctx context.Context, id uuid.UUID) (MangaData, error) {
	return Call[MangaData](ctx, c, OpGetManga.Endpoint(id))
}

func (c *Client) UpdateManga(ctx context.Context, id uuid.UUID, body MangaRequest) (MangaData, error) {
	return Call[MangaData](ctx, c, OpUpdateManga.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteManga(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteManga.Endpoint(id))
}

func (c *Client) FollowManga(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpFollowManga.Endpoint(id))
}

func (c *Client) UnfollowManga(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpUnfollowManga.Endpoint(id))
}

// MangaReadMarkers returns the read chapter ids of one manga.
func (c *Client) MangaReadMarkers(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	markers, err := Call[ReadMarkers](ctx, c, OpMangaReadMarkers.Endpoint(id))
	return markers.Data, err
}

// BatchMangaReadMarkers returns the read chapter ids of several manga at once.
func (c *Client) BatchMangaReadMarkers(ctx context.Context, ids ...uuid.UUID) ([]uuid.UUID, error) {
	markers, err := Call[ReadMarkers](ctx, c, OpBatchMangaReadMarkers.Endpoint().WithQuery(readMarkersQuery{IDs: ids}))
	return markers.Data, err
}

func (c *Client) RandomManga(ctx context.Context) (MangaData, error) {
	return Call[MangaData](ctx, c, OpRandomManga.Endpoint())
}

// ListTags returns every tag. The response is a bare array of envelopes.
func (c *Client) ListTags(ctx context.Context) (List[TagData], error) {
	return Send[List[TagData]](ctx, c, OpListTags.Endpoint())
}

// MangaReadingStatuses returns the shelves of the logged user's library,
// optionally restricted to one status.
func (c *Client) MangaReadingStatuses(ctx context.Context, status mo.Option[ReadingStatus]) (map[uuid.UUID]ReadingStatus, error) {
	statuses, err := Call[MangaReadingStatuses](ctx, c, OpMangaReadingStatuses.Endpoint().WithQuery(readingStatusQuery{Status: status.OrEmpty()}))
	return statuses.Statuses, err
}

func (c *Client) MangaReadingStatus(ctx context.Context, id uuid.UUID) (ReadingStatus, error) {
	body, err := Call[MangaReadingStatusBody](ctx, c, OpMangaReadingStatus.Endpoint(id))
	return body.Status, err
}

func (c *Client) UpdateMangaReadingStatus(ctx context.Context, id uuid.UUID, status ReadingStatus) error {
	return discard(ctx, c, OpUpdateMangaReadingStatus.Endpoint(id).WithBody(MangaReadingStatusBody{Status: status}))
}

func (c *Client) AddMangaToList(ctx context.Context, mangaID, listID uuid.UUID) error {
	return discard(ctx, c, OpAddMangaToList.Endpoint(mangaID, listID))
}

func (c *Client) RemoveMangaFromList(ctx context.Context, mangaID, listID uuid.UUID) error {
	return discard(ctx, c, OpRemoveMangaFromList.Endpoint(mangaID, listID))
}

// discard performs an endpoint whose success carries no payload.
func discard(ctx context.Context, c *Client, e Endpoint) error {
	_, err := Call[NoData](ctx, c, e)
	return err
}

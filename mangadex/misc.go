package mangadex

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type (
	MappingID     = Object[MappingIDAttributes]
	MappingIDData = Data[MappingID]

	Report     = Object[ReportAttributes]
	ReportData = Data[Report]
	ReportPage = Page[ReportData]
)

// MappingIDAttributes pairs a legacy numeric id with its current uuid.
type MappingIDAttributes struct {
	Type     MappingType `json:"type"`
	LegacyID int         `json:"legacyId"`
	NewID    uuid.UUID   `json:"newId"`
}

type legacyMappingBody struct {
	Type MappingType `json:"type"`
	IDs  []int       `json:"ids"`
}

// LegacyMapping translates numeric ids of the previous site. The response
// is a bare array of envelopes.
func (c *Client) LegacyMapping(ctx context.Context, t MappingType, ids ...int) (List[MappingIDData], error) {
	return Send[List[MappingIDData]](ctx, c, OpLegacyMapping.Endpoint().WithBody(legacyMappingBody{Type: t, IDs: ids}))
}

// AtHomeServer is the image server picked for one chapter.
type AtHomeServer struct {
	BaseURL string `json:"baseUrl"`
}

// PageURL returns the address of one page image.
func (s AtHomeServer) PageURL(hash, file string, dataSaver bool) string {
	quality := "data"
	if dataSaver {
		quality = "data-saver"
	}
	return fmt.Sprintf("%s/%s/%s/%s", strings.TrimSuffix(s.BaseURL, "/"), quality, hash, file)
}

// PageURLs returns the page images of a chapter in reading order.
func (s AtHomeServer) PageURLs(chapter ChapterAttributes, dataSaver bool) []string {
	files := chapter.Data
	if dataSaver {
		files = chapter.DataSaver
	}

	urls := make([]string, len(files))
	for i, file := range files {
		urls[i] = s.PageURL(chapter.Hash, file, dataSaver)
	}
	return urls
}

type atHomeQuery struct {
	ForcePort443 bool `url:"forcePort443"`
}

// AtHomeServer resolves the image server for a chapter. forcePort443 limits
// the choice to servers on the standard HTTPS port.
func (c *Client) AtHomeServer(ctx context.Context, chapterID uuid.UUID, forcePort443 bool) (AtHomeServer, error) {
	return Send[AtHomeServer](ctx, c, OpAtHomeServer.Endpoint(chapterID).WithQuery(atHomeQuery{ForcePort443: forcePort443}))
}

type ReportAttributes struct {
	Reason          LocalizedString `json:"reason"`
	DetailsRequired bool            `json:"detailsRequired"`
	Category        ReportCategory  `json:"category"`
	Version         int             `json:"version"`
}

type ReportRequest struct {
	Category ReportCategory `json:"category"`
	Reason   uuid.UUID      `json:"reason"`
	ObjectID uuid.UUID      `json:"objectId"`
	Details  string         `json:"details,omitempty"`
}

// ReportReasons lists the reasons a report of the category may give.
func (c *Client) ReportReasons(ctx context.Context, category ReportCategory) (ReportPage, error) {
	return Send[ReportPage](ctx, c, OpReportReasons.Endpoint(category))
}

func (c *Client) CreateReport(ctx context.Context, body ReportRequest) error {
	return discard(ctx, c, OpCreateReport.Endpoint().WithBody(body))
}

type captchaBody struct {
	Challenge string `json:"captchaChallenge"`
}

// SolveCaptcha submits a solved challenge so that rate limited calls may
// proceed.
func (c *Client) SolveCaptcha(ctx context.Context, challenge string) error {
	return discard(ctx, c, OpSolveCaptcha.Endpoint().WithBody(captchaBody{Challenge: challenge}))
}

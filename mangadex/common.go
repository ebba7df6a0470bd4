package mangadex

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ResourceType tags every object and relationship.
type ResourceType string

const (
	TypeManga           ResourceType = "manga"
	TypeChapter         ResourceType = "chapter"
	TypeCoverArt        ResourceType = "cover_art"
	TypeAuthor          ResourceType = "author"
	TypeArtist          ResourceType = "artist"
	TypeScanlationGroup ResourceType = "scanlation_group"
	TypeTag             ResourceType = "tag"
	TypeUser            ResourceType = "user"
	TypeCustomList      ResourceType = "custom_list"
	TypeMappingID       ResourceType = "mapping_id"
	TypeReport          ResourceType = "report"
)

// Object is the {id, type, attributes} triple shared by all resources.
type Object[A any] struct {
	ID         uuid.UUID    `json:"id"`
	Type       ResourceType `json:"type"`
	Attributes A            `json:"attributes"`
}

type Relationship struct {
	ID   uuid.UUID    `json:"id"`
	Type ResourceType `json:"type"`
}

// Data is the payload of single resource responses.
type Data[T any] struct {
	Data          T              `json:"data"`
	Relationships []Relationship `json:"relationships"`
}

// Related returns the ids of the relationships of the given type.
func (d Data[T]) Related(t ResourceType) []uuid.UUID {
	return lo.FilterMap(d.Relationships, func(r Relationship, _ int) (uuid.UUID, bool) {
		return r.ID, r.Type == t
	})
}

// NoData is the payload of responses that carry only the result tag.
type NoData struct{}

// LocalizedString maps language codes to text.
type LocalizedString map[string]string

// UnmarshalJSON accepts [] for an empty value, which the API sends for
// empty descriptions.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		*l = LocalizedString{}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}

	*l = m
	return nil
}

func (l LocalizedString) Get(lang string) mo.Option[string] {
	if value, ok := l[lang]; ok {
		return mo.Some(value)
	}
	return mo.None[string]()
}

// Preferred returns the first language found in langs, then English, then
// any value. It is empty when l is.
func (l LocalizedString) Preferred(langs ...string) string {
	for _, lang := range append(langs, "en") {
		if value, ok := l[lang]; ok {
			return value
		}
	}

	keys := lo.Keys(l)
	if len(keys) == 0 {
		return ""
	}

	// deterministic fallback
	return l[lo.Min(keys)]
}

// Pagination is embedded into list queries.
type Pagination struct {
	Limit  int `url:"limit,omitempty" json:"limit,omitempty"`
	Offset int `url:"offset,omitempty" json:"offset,omitempty"`
}

type OrderType string

const (
	Asc  OrderType = "asc"
	Desc OrderType = "desc"
)

// Timestamp layout accepted by the date filters of list queries.
const TimestampLayout = "2006-01-02T15:04:05"

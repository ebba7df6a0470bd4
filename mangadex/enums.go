package mangadex

type MangaStatus string

const (
	StatusOngoing   MangaStatus = "ongoing"
	StatusCompleted MangaStatus = "completed"
	StatusHiatus    MangaStatus = "hiatus"
	StatusCancelled MangaStatus = "cancelled"
)

// Demographic is the intended publication demographic.
type Demographic string

const (
	DemographicShounen Demographic = "shounen"
	DemographicShoujo  Demographic = "shoujo"
	DemographicJosei   Demographic = "josei"
	DemographicSeinen  Demographic = "seinen"
	DemographicNone    Demographic = "none"
)

type ContentRating string

const (
	RatingSafe         ContentRating = "safe"
	RatingSuggestive   ContentRating = "suggestive"
	RatingErotica      ContentRating = "erotica"
	RatingPornographic ContentRating = "pornographic"
)

// ContentRatings lists every rating from the mildest.
var ContentRatings = []ContentRating{RatingSafe, RatingSuggestive, RatingErotica, RatingPornographic}

// TagMode combines included or excluded tags.
type TagMode string

const (
	TagModeAnd TagMode = "AND"
	TagModeOr  TagMode = "OR"
)

// ReadingStatus is a user's library shelf for a manga.
type ReadingStatus string

const (
	ReadingStatusReading    ReadingStatus = "reading"
	ReadingStatusOnHold     ReadingStatus = "on_hold"
	ReadingStatusPlanToRead ReadingStatus = "plan_to_read"
	ReadingStatusDropped    ReadingStatus = "dropped"
	ReadingStatusReReading  ReadingStatus = "re_reading"
	ReadingStatusCompleted  ReadingStatus = "completed"
)

// ReadingStatuses lists every shelf.
var ReadingStatuses = []ReadingStatus{
	ReadingStatusReading,
	ReadingStatusOnHold,
	ReadingStatusPlanToRead,
	ReadingStatusDropped,
	ReadingStatusReReading,
	ReadingStatusCompleted,
}

type ListVisibility string

const (
	VisibilityPublic  ListVisibility = "public"
	VisibilityPrivate ListVisibility = "private"
)

// MappingType is the kind of legacy numeric id being translated.
type MappingType string

const (
	MappingGroup   MappingType = "group"
	MappingManga   MappingType = "manga"
	MappingChapter MappingType = "chapter"
	MappingTag     MappingType = "tag"
)

type ReportCategory string

const (
	ReportManga           ReportCategory = "manga"
	ReportChapter         ReportCategory = "chapter"
	ReportScanlationGroup ReportCategory = "scanlation_group"
	ReportUser            ReportCategory = "user"
)

// Package mountaineers parses www.mountaineers.org pages into typed records.
//
// All parsers are pure: they take an already fetched goquery document plus
// the canonical URL of the page and never touch the network. Optional scalar
// fields are pointers so encoded output carries explicit nulls instead of
// silently dropping keys.
package mountaineers

// PageSize is the fixed number of results per faceted search page.
const PageSize = 20

// DefaultBaseURL is the production site origin.
const DefaultBaseURL = "https://www.mountaineers.org"

// SearchResult is one page of faceted search results.
type SearchResult[T any] struct {
	TotalCount int  `json:"total_count"`
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	HasMore    bool `json:"has_more"`
}

// NewSearchResult derives HasMore from the page number and total count.
// This is the only place the pagination arithmetic lives.
func NewSearchResult[T any](totalCount int, items []T, page int) SearchResult[T] {
	return SearchResult[T]{
		TotalCount: totalCount,
		Items:      items,
		Page:       page,
		HasMore:    (page+1)*PageSize < totalCount,
	}
}

// ListResult is an unpaginated list with an applied limit.
// TotalCount is the count before truncation; Limit 0 means no limit.
type ListResult[T any] struct {
	TotalCount int `json:"total_count"`
	Items      []T `json:"items"`
	Limit      int `json:"limit"`
}

// ActivitySummary is one card on an activity search results page.
type ActivitySummary struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Type          *string `json:"type"`
	Date          *string `json:"date"`
	Difficulty    *string `json:"difficulty"`
	Availability  *string `json:"availability"`
	Branch        *string `json:"branch"`
	Leader        *string `json:"leader"`
	LeaderURL     *string `json:"leader_url"`
	Description   *string `json:"description"`
	Prerequisites *string `json:"prerequisites"`
}

// LeaderEntry is one contact block in an activity's leaders section.
type LeaderEntry struct {
	Name string  `json:"name"`
	URL  *string `json:"url"`
	Role *string `json:"role"`
}

// ActivityDetail is a fully parsed activity page.
type ActivityDetail struct {
	Title             string        `json:"title"`
	URL               string        `json:"url"`
	Type              *string       `json:"type"`
	Date              *string       `json:"date"`
	EndDate           *string       `json:"end_date"`
	Committee         *string       `json:"committee"`
	ActivityType      *string       `json:"activity_type"`
	Audience          *string       `json:"audience"`
	Difficulty        *string       `json:"difficulty"`
	Mileage           *string       `json:"mileage"`
	ElevationGain     *string       `json:"elevation_gain"`
	Availability      *string       `json:"availability"`
	RegistrationOpen  *string       `json:"registration_open"`
	RegistrationClose *string       `json:"registration_close"`
	Branch            *string       `json:"branch"`
	Leader            *string       `json:"leader"`
	LeaderURL         *string       `json:"leader_url"`
	Leaders           []LeaderEntry `json:"leaders"`
	LeaderNotes       *string       `json:"leader_notes"`
	MeetingPlace      *string       `json:"meeting_place"`
	RoutePlace        *string       `json:"route_place"`
	RequiredEquipment *string       `json:"required_equipment"`
	Prerequisites     *string       `json:"prerequisites"`
}

// CourseSummary is one card on a course search results page.
type CourseSummary struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Date          *string `json:"date"`
	Prerequisites *string `json:"prerequisites"`
	Availability  *string `json:"availability"`
	Branch        *string `json:"branch"`
	Leader        *string `json:"leader"`
	LeaderURL     *string `json:"leader_url"`
	Description   *string `json:"description"`
}

// CourseLeader is one leader listed on a course page.
type CourseLeader struct {
	Name string  `json:"name"`
	Role *string `json:"role"`
}

// CourseDetail is a fully parsed course page.
type CourseDetail struct {
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	Category     *string        `json:"category"`
	Description  *string        `json:"description"`
	Dates        *string        `json:"dates"`
	StartDate    *string        `json:"start_date"`
	EndDate      *string        `json:"end_date"`
	Committee    *string        `json:"committee"`
	CommitteeURL *string        `json:"committee_url"`
	MemberPrice  *string        `json:"member_price"`
	GuestPrice   *string        `json:"guest_price"`
	Availability *string        `json:"availability"`
	Capacity     *string        `json:"capacity"`
	Leaders      []CourseLeader `json:"leaders"`
	BadgesEarned []string       `json:"badges_earned"`
}

// RouteSummary is one card on a routes & places search results page.
type RouteSummary struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// RouteDetail is a fully parsed route/place page.
type RouteDetail struct {
	Title                string   `json:"title"`
	URL                  string   `json:"url"`
	Description          *string  `json:"description"`
	SuitableActivities   *string  `json:"suitable_activities"`
	Seasons              *string  `json:"seasons"`
	Difficulty           *string  `json:"difficulty"`
	Length               *string  `json:"length"`
	ElevationGain        *string  `json:"elevation_gain"`
	HighPoint            *string  `json:"high_point"`
	LandManager          *string  `json:"land_manager"`
	ParkingPermit        *string  `json:"parking_permit"`
	RecommendedPartySize *string  `json:"recommended_party_size"`
	MaximumPartySize     *string  `json:"maximum_party_size"`
	Directions           *string  `json:"directions"`
	RecommendedMaps      []string `json:"recommended_maps"`
	RelatedRoutes        []string `json:"related_routes"`
}

// TripReportSummary is one card on a trip report search results page.
type TripReportSummary struct {
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Date         *string `json:"date"`
	Author       *string `json:"author"`
	ActivityType *string `json:"activity_type"`
	TripResult   *string `json:"trip_result"`
	Description  *string `json:"description"`
}

// TripReportDetail is a fully parsed trip report page.
type TripReportDetail struct {
	Title              string  `json:"title"`
	URL                string  `json:"url"`
	Date               *string `json:"date"`
	Author             *string `json:"author"`
	ActivityType       *string `json:"activity_type"`
	TripResult         *string `json:"trip_result"`
	Route              *string `json:"route"`
	Body               *string `json:"body"`
	RelatedActivityURL *string `json:"related_activity_url"`
}

// Badge is a member badge with optional earned/expiry dates.
type Badge struct {
	Name    string  `json:"name"`
	Earned  *string `json:"earned"`
	Expires *string `json:"expires"`
}

// MemberProfile is a parsed member profile page.
type MemberProfile struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	MemberSince *string  `json:"member_since"`
	Branch      *string  `json:"branch"`
	Email       *string  `json:"email"`
	Committees  []string `json:"committees"`
	Badges      []Badge  `json:"badges"`
}

// RosterEntry is one participant on an activity roster.
// Name falls back to the literal "Unknown" when nothing resolves; callers
// depend on that exact default.
type RosterEntry struct {
	Name       string  `json:"name"`
	ProfileURL *string `json:"profile_url"`
	Role       *string `json:"role"`
	Avatar     *string `json:"avatar"`
}

// MyActivity is the normalized shape shared by the embedded-listing and
// activity-history JSON paths.
type MyActivity struct {
	UID          string  `json:"uid"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Category     *string `json:"category"`
	ActivityType *string `json:"activity_type"`
	StartDate    *string `json:"start_date"`
	Leader       *string `json:"leader"`
	IsLeader     bool    `json:"is_leader"`
	Position     *string `json:"position"`
	Status       *string `json:"status"`
	Result       *string `json:"result"`
	Difficulty   *string `json:"difficulty"`
	LeaderRating *string `json:"leader_rating"`
}

package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homePage = `<html><body>
	<a href="/members/share-this">Share</a>
	<a href="/members/jane-doe">My Profile</a>
</body></html>`

const profilePage = `<html><body>
	<h1>Profile</h1>
	<h1>Jane Doe</h1>
</body></html>`

const historyJSON = `[
	{"uid":"a1","href":"/activities/activities/hike-one","title":"Hike One","category":"trip","activity_type":"Day Hiking","start":"2024-05-01T09:00:00","result":"Successful"},
	{"href":"/activities/activities/climb-two/","title":"Climb Two","category":"trip","activity_type":"Climbing","start":"2025-02-10T07:00:00","trip_results":"Turned Around"},
	{"uid":"c1","href":"/courses/basic-2024","title":"Basic Course","category":"course","start":"2024-01-15T18:00:00","result":"Graduated"}
]`

func setupMember(f *fakeFetcher) {
	f.docs["/"] = homePage
	f.docs["/members/jane-doe"] = profilePage
	f.jsonBodies["/members/jane-doe/member-activity-history.json"] = historyJSON
}

func TestWhoami(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	me, err := Whoami(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, f.loginCalls)
	assert.Equal(t, "Jane Doe", me.Name)
	assert.Equal(t, "jane-doe", me.Slug)
	assert.Equal(t, testBase+"/members/jane-doe", me.ProfileURL)
}

func TestWhoamiExactLinkTextOnly(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	f.docs["/"] = `<a href="/members/someone">View Profile</a>`

	_, err := Whoami(context.Background(), f)
	assert.ErrorIs(t, err, ErrProfileLinkNotFound)
}

func TestWhoamiNameFallsBackToSlug(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	f.docs["/"] = homePage
	f.docs["/members/jane-doe"] = `<html><head><title></title></head><body><h1>Profile</h1></body></html>`

	me, err := Whoami(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", me.Name)
}

func TestWhoamiAbsoluteProfileLink(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	f.docs["/"] = `<a href="` + testBase + `/members/jane-doe">My Profile</a>`
	f.docs["/members/jane-doe"] = profilePage

	me, err := Whoami(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, testBase+"/members/jane-doe", me.ProfileURL)
}

func TestGetMyActivitiesFromEmbeddedListing(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)
	f.docs["/members/jane-doe/member-activities"] = `<div class="pat-contentlisting" data-pat-contentlisting='{
		"activities":[{"href":"/activities/activities/snowshoe","title":"Snowshoe Trip","start":"2025-01-20T08:00:00","position":"Participant"}],
		"courses":[{"href":"/courses/nav-2025","title":"Navigation","start":"2025-03-01T18:00:00","position":"Instructor"}]
	}'></div>`

	activities, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{})
	require.NoError(t, err)
	require.Len(t, activities, 2)

	assert.Equal(t, "Navigation", activities[0].Title, "most recent first")
	assert.Equal(t, "course", *activities[0].Category)
	assert.True(t, activities[0].IsLeader, "instructor position counts as leading")

	assert.Equal(t, "Snowshoe Trip", activities[1].Title)
	assert.Equal(t, "trip", *activities[1].Category)
	assert.Equal(t, "2025-01-20", *activities[1].StartDate)
	assert.False(t, activities[1].IsLeader)
}

func TestGetMyActivitiesFallsBackToHistoryEndpoint(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)
	f.docs["/members/jane-doe/member-activities"] = `<html><body>nothing here</body></html>`

	activities, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{})
	require.NoError(t, err)
	assert.Len(t, activities, 3)
}

func TestGetMyActivitiesSortsAndLimits(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	records := make([]string, 0, 25)
	for i := 1; i <= 25; i++ {
		records = append(records, fmt.Sprintf(
			`{"uid":"t%02d","title":"Trip %02d","start":"2024-01-%02dT08:00:00"}`, i, i, i))
	}
	f.jsonBodies["/members/jane-doe/member-activity-history.json"] = "[" + strings.Join(records, ",") + "]"

	activities, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{})
	require.NoError(t, err)
	require.Len(t, activities, 20, "default limit is 20")
	assert.Equal(t, "Trip 25", activities[0].Title, "most recent first")
	assert.Equal(t, "Trip 06", activities[19].Title)

	zero := 0
	all, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{Limit: &zero})
	require.NoError(t, err)
	assert.Len(t, all, 25, "limit 0 returns everything")

	five := 5
	limited, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{Limit: &five})
	require.NoError(t, err)
	assert.Len(t, limited, 5)
}

func TestGetMyActivitiesFilters(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	activities, err := GetMyActivities(context.Background(), f, GetMyActivitiesInput{
		Category: "TRIP",
		DateFrom: "2024-06-01",
	})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Climb Two", activities[0].Title)
}

func TestGetMyCoursesRestrictsCategory(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	courses, err := GetMyCourses(context.Background(), f, GetMyCoursesInput{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Basic Course", courses[0].Title)
	assert.Equal(t, "Graduated", *courses[0].Result)
}

func TestGetMyBadges(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)
	f.docs["/members/jane-doe"] = `<html><body>
		<h1>Jane Doe</h1>
		<div class="profile-badges">
			<div class="badge"><a href="/b1" title="Earned: 2020-01-15; Expires: 2999-01-01">Basic Climbing</a></div>
			<div class="badge"><a href="/b2" title="Earned: 2018-03-01; Expires: 2020-03-01">First Aid</a></div>
			<div class="badge"><a href="/b3">Leader</a></div>
		</div>
	</body></html>`

	all, err := GetMyBadges(context.Background(), f, GetMyBadgesInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := GetMyBadges(context.Background(), f, GetMyBadgesInput{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Basic Climbing", active[0].Name)
	assert.Equal(t, "Leader", active[1].Name, "badge without expiry stays active")

	named, err := GetMyBadges(context.Background(), f, GetMyBadgesInput{Name: "climb"})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "Basic Climbing", named[0].Name)
}

func TestGetActivityHistorySortsDescending(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	result, err := GetActivityHistory(context.Background(), f, GetActivityHistoryInput{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 20, result.Limit)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Climb Two", result.Items[0].Title)
	assert.Equal(t, "Hike One", result.Items[1].Title)
	assert.Equal(t, "Basic Course", result.Items[2].Title)

	assert.Equal(t, "climb-two", result.Items[0].UID, "uid derived from url when absent")
	assert.Equal(t, testBase+"/activities/activities/climb-two/", result.Items[0].URL)
	assert.Equal(t, "Turned Around", *result.Items[0].Result, "trip_results preferred")
}

func TestGetActivityHistoryFiltersAndLimit(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)

	result, err := GetActivityHistory(context.Background(), f, GetActivityHistoryInput{
		ActivityType: "climbing",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Climb Two", result.Items[0].Title)

	one := 1
	limited, err := GetActivityHistory(context.Background(), f, GetActivityHistoryInput{Limit: &one})
	require.NoError(t, err)
	assert.Equal(t, 3, limited.TotalCount, "total reflects pre-truncation size")
	assert.Len(t, limited.Items, 1)
	assert.Equal(t, 1, limited.Limit)

	zero := 0
	unlimited, err := GetActivityHistory(context.Background(), f, GetActivityHistoryInput{Limit: &zero})
	require.NoError(t, err)
	assert.Len(t, unlimited.Items, 3)
	assert.Equal(t, 0, unlimited.Limit)
}

func TestGetActivityHistoryWrappedResponse(t *testing.T) {
	t.Parallel()
	f := newFakeFetcher()
	setupMember(f)
	f.jsonBodies["/members/jane-doe/member-activity-history.json"] = `{"items":[
		{"uid":"x","title":"Wrapped","start":"2024-01-01T00:00:00"}
	]}`

	result, err := GetActivityHistory(context.Background(), f, GetActivityHistoryInput{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Wrapped", result.Items[0].Title)
}

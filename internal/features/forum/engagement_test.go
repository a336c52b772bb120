package forum

import (
	"testing"

	"github.com/google/uuid"
)

func rankedFixture(id string, name string, count int) RankedForum {
	entry := RankedForum{DiscussionCount: count}
	entry.ID = uuid.MustParse(id)
	entry.Name = name
	return entry
}

func TestSortByEngagementOrdersByDiscussionCount(t *testing.T) {
	ranked := []RankedForum{
		rankedFixture("00000000-0000-0000-0000-000000000001", "low", 1),
		rankedFixture("00000000-0000-0000-0000-000000000002", "high", 3),
		rankedFixture("00000000-0000-0000-0000-000000000003", "mid", 2),
	}

	sortByEngagement(ranked)

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].Name, want)
		}
	}
}

func TestSortByEngagementBreaksTiesByID(t *testing.T) {
	ranked := []RankedForum{
		rankedFixture("00000000-0000-0000-0000-00000000000b", "second", 5),
		rankedFixture("00000000-0000-0000-0000-00000000000a", "first", 5),
	}

	sortByEngagement(ranked)

	if ranked[0].Name != "first" || ranked[1].Name != "second" {
		t.Errorf("tie not broken by id: got [%s, %s]", ranked[0].Name, ranked[1].Name)
	}

	// The same input must always produce the same order.
	again := []RankedForum{
		rankedFixture("00000000-0000-0000-0000-00000000000b", "second", 5),
		rankedFixture("00000000-0000-0000-0000-00000000000a", "first", 5),
	}
	sortByEngagement(again)
	if again[0].Name != ranked[0].Name {
		t.Error("tie-break ordering is not deterministic")
	}
}

func TestAnnotateForViewer(t *testing.T) {
	viewer := uuid.MustParse("aaaaaaaa-0000-0000-0000-0000000000ff")

	followed := rankedFixture("00000000-0000-0000-0000-000000000001", "followed", 2)
	followed.Enrolled = []uuid.UUID{viewer}
	other := rankedFixture("00000000-0000-0000-0000-000000000002", "other", 1)
	other.Enrolled = []uuid.UUID{uuid.New()}

	cached := []RankedForum{followed, other}
	annotated := AnnotateForViewer(cached, viewer)

	if annotated[0].IsFollowing == nil || !*annotated[0].IsFollowing {
		t.Error("followed forum not flagged for viewer")
	}
	if annotated[1].IsFollowing == nil || *annotated[1].IsFollowing {
		t.Error("unfollowed forum incorrectly flagged for viewer")
	}

	// The cached entries must stay viewer-free.
	for i, entry := range cached {
		if entry.IsFollowing != nil {
			t.Errorf("cached entry %d gained a viewer flag", i)
		}
	}
}

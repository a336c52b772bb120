package forum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/commune-hq/community-server-go/internal/features/user"
)

func TestDeriveIsFollowing(t *testing.T) {
	alice := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	carol := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	enrolled := []uuid.UUID{alice, bob}

	cases := []struct {
		name     string
		enrolled []uuid.UUID
		viewer   *uuid.UUID
		want     bool
	}{
		{"enrolled viewer", enrolled, &alice, true},
		{"other enrolled viewer", enrolled, &bob, true},
		{"non-member viewer", enrolled, &carol, false},
		{"anonymous viewer", enrolled, nil, false},
		{"empty enrolled set", nil, &alice, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveIsFollowing(tc.enrolled, tc.viewer); got != tc.want {
				t.Errorf("DeriveIsFollowing = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewViewOmitsFlagForAnonymousViewer(t *testing.T) {
	f := testForum("go-devs", 2)

	v := NewView(&f, nil)
	if v.IsFollowing != nil {
		t.Fatalf("anonymous view should omit isFollowing, got %v", *v.IsFollowing)
	}
}

func TestNewListViewsAnnotatesEveryForum(t *testing.T) {
	viewer := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

	forums := []Forum{
		testForum("one", 0),
		testForum("two", 0),
		testForum("three", 0),
	}
	// The viewer follows the second forum only.
	forums[1].Memberships = append(forums[1].Memberships, Membership{UserID: viewer})

	views := NewListViews(forums, &viewer)
	if len(views) != len(forums) {
		t.Fatalf("got %d views for %d forums", len(views), len(forums))
	}

	for i, v := range views {
		if v.IsFollowing == nil {
			t.Fatalf("view %d missing isFollowing for authenticated viewer", i)
		}
		want := DeriveIsFollowing(v.Enrolled, &viewer)
		if *v.IsFollowing != want {
			t.Errorf("view %d (%s): isFollowing = %v, want %v", i, v.Name, *v.IsFollowing, want)
		}
	}

	if *views[1].IsFollowing != true {
		t.Error("viewer follows the second forum but flag is false")
	}
	if *views[0].IsFollowing || *views[2].IsFollowing {
		t.Error("unfollowed forums were flagged as followed")
	}
}

func TestNewViewDoesNotMutateForum(t *testing.T) {
	viewer := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	f := testForum("immutable", 3)
	before := f

	_ = NewView(&f, &viewer)

	if diff := cmp.Diff(before, f); diff != "" {
		t.Errorf("projection mutated the forum entity (-before +after):\n%s", diff)
	}
}

func TestNewDetailViewDefaultsEmptySlices(t *testing.T) {
	f := testForum("quiet", 1)

	d := NewDetailView(&f, nil)
	if d.Discussions == nil || d.Topics == nil {
		t.Error("detail view should carry empty slices, not nulls")
	}
	if len(d.Followers) != 0 {
		t.Errorf("memberships without preloaded users yield %d followers, want 0", len(d.Followers))
	}
}

func TestNewDetailViewFollowerProfiles(t *testing.T) {
	f := testForum("social", 0)
	member := &user.User{
		ID:        uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001"),
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	f.Memberships = []Membership{{UserID: member.ID, User: member}}

	d := NewDetailView(&f, nil)
	if len(d.Followers) != 1 {
		t.Fatalf("got %d followers, want 1", len(d.Followers))
	}
	if d.Followers[0].FirstName != "Ada" || d.Followers[0].LastName != "Lovelace" {
		t.Errorf("unexpected follower profile: %+v", d.Followers[0])
	}
}

// testForum builds a forum with n anonymous member edges.
func testForum(name string, members int) Forum {
	f := Forum{
		ID:   uuid.New(),
		Name: name,
	}
	for i := 0; i < members; i++ {
		f.Memberships = append(f.Memberships, Membership{UserID: uuid.New()})
	}
	return f
}

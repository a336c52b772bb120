package forum

import (
	"time"

	"github.com/google/uuid"

	"github.com/commune-hq/community-server-go/internal/features/discussion"
	"github.com/commune-hq/community-server-go/internal/features/topic"
	"github.com/commune-hq/community-server-go/internal/features/user"
)

// View is the response projection of a forum: entity fields plus the
// viewer-relative isFollowing flag. The flag lives only on views; stored
// rows never carry it. Field names match the legacy API.
type View struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Photo       *string       `json:"photo,omitempty"`
	Description *string       `json:"description,omitempty"`
	CreatedBy   *user.Profile `json:"createdBy,omitempty"`
	Enrolled    []uuid.UUID   `json:"enrolled"`
	IsFollowing *bool         `json:"isFollowing,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DetailView extends View with the joined sub-resources of the detail
// and engagement responses.
type DetailView struct {
	View
	Followers   []user.Profile          `json:"followers"`
	Discussions []discussion.Discussion `json:"discussion"`
	Topics      []topic.Topic           `json:"topics"`
}

// DeriveIsFollowing reports whether the viewer is present in the enrolled
// set. Ids are compared as opaque equatable values; a nil viewer (no
// authenticated user) always derives false.
func DeriveIsFollowing(enrolled []uuid.UUID, viewer *uuid.UUID) bool {
	if viewer == nil {
		return false
	}
	for _, id := range enrolled {
		if id == *viewer {
			return true
		}
	}
	return false
}

// NewView projects a forum onto its response view for the given viewer.
// A nil viewer omits the isFollowing flag entirely.
func NewView(f *Forum, viewer *uuid.UUID) View {
	v := View{
		ID:          f.ID,
		Name:        f.Name,
		Photo:       f.Photo,
		Description: f.Description,
		Enrolled:    enrolledFromMemberships(f.Memberships),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}

	if f.CreatedBy != nil {
		profile := f.CreatedBy.AsProfile()
		v.CreatedBy = &profile
	}

	if viewer != nil {
		following := DeriveIsFollowing(v.Enrolled, viewer)
		v.IsFollowing = &following
	}

	return v
}

// NewListViews projects every forum in the slice uniformly.
func NewListViews(forums []Forum, viewer *uuid.UUID) []View {
	views := make([]View, 0, len(forums))
	for i := range forums {
		views = append(views, NewView(&forums[i], viewer))
	}
	return views
}

// NewDetailView projects a forum plus its joined sub-resources.
func NewDetailView(f *Forum, viewer *uuid.UUID) DetailView {
	d := DetailView{
		View:        NewView(f, viewer),
		Followers:   followerProfiles(f.Memberships),
		Discussions: f.Discussions,
		Topics:      f.Topics,
	}

	if d.Discussions == nil {
		d.Discussions = []discussion.Discussion{}
	}
	if d.Topics == nil {
		d.Topics = []topic.Topic{}
	}

	return d
}

func enrolledFromMemberships(memberships []Membership) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	return ids
}

func followerProfiles(memberships []Membership) []user.Profile {
	profiles := make([]user.Profile, 0, len(memberships))
	for _, m := range memberships {
		if m.User != nil {
			profiles = append(profiles, m.User.AsProfile())
		}
	}
	return profiles
}

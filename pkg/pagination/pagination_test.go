package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
)

func contextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/forums?"+query, nil)
	return c
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 20, Skip: 0}},
		{"explicit", "page=3&limit=10", Params{Page: 3, Limit: 10, Skip: 20}},
		{"limit capped", "limit=500", Params{Page: 1, Limit: 100, Skip: 0}},
		{"negative page", "page=-2", Params{Page: 1, Limit: 20, Skip: 0}},
		{"garbage input", "page=abc&limit=xyz", Params{Page: 1, Limit: 20, Skip: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(contextWithQuery(t, tc.query))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMetadataFrom(t *testing.T) {
	got := MetadataFrom(45, Params{Page: 2, Limit: 20, Skip: 20})
	want := Metadata{
		TotalItems:  45,
		CurrentPage: 2,
		PageSize:    20,
		TotalPages:  3,
		HasNextPage: true,
		HasPrevPage: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MetadataFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadataFromEmpty(t *testing.T) {
	got := MetadataFrom(0, Params{Page: 1, Limit: 20})
	if got.TotalPages != 0 || got.HasNextPage || got.HasPrevPage {
		t.Errorf("empty result metadata unexpected: %+v", got)
	}
}

package fixture

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"roster-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsDeterministic(t *testing.T) {
	a := Seed(30)
	b := Seed(30)
	itemsA, _ := a.List(ListParams{})
	itemsB, _ := b.List(ListParams{})
	assert.Equal(t, itemsA, itemsB)
	assert.Len(t, a.Departments(), 6)
	assert.Equal(t, 30, a.Len())
}

func TestList_FiltersSortsAndPages(t *testing.T) {
	db := Seed(50)

	items, total := db.List(ParseListParams(url.Values{
		"_page":  {"2"},
		"_limit": {"5"},
		"_sort":  {"salary"},
		"_order": {"desc"},
		"status": {"active"},
	}))

	assert.Equal(t, 30, total)
	require.Len(t, items, 5)
	for i, e := range items {
		assert.Equal(t, model.StatusActive, e.Status)
		if i > 0 {
			assert.GreaterOrEqual(t, items[i-1].Salary, e.Salary)
		}
	}
}

func TestList_TextSearchIsCaseInsensitive(t *testing.T) {
	db := NewDB([]model.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
	}, nil)

	items, total := db.List(ListParams{Text: "LOVE"})
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestList_PageBeyondEndIsEmpty(t *testing.T) {
	db := Seed(12)
	items, total := db.List(ListParams{Page: 9, Limit: 10})
	assert.Equal(t, 12, total)
	assert.Empty(t, items)
}

func TestCreateUpdateDelete(t *testing.T) {
	db := Seed(3)

	created := db.Create(model.EmployeeInput{FirstName: "New", LastName: "Hire", Status: model.StatusActive})
	assert.Equal(t, 4, created.ID)

	updated, ok := db.Update(created.ID, model.EmployeeInput{FirstName: "Renamed", LastName: "Hire"})
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.FirstName)

	assert.True(t, db.Delete(created.ID))
	assert.False(t, db.Delete(created.ID))
	_, ok = db.Get(created.ID)
	assert.False(t, ok)
}

func TestHandler_TotalCountOnlyWhenPaging(t *testing.T) {
	srv := httptest.NewServer(NewHandler(Seed(25), Options{}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/employees?_page=1&_limit=10")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "25", resp.Header.Get("X-Total-Count"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Get(srv.URL + "/api/employees")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("X-Total-Count"))
}

func TestHandler_NotFound(t *testing.T) {
	srv := httptest.NewServer(NewHandler(Seed(2), Options{}))
	t.Cleanup(srv.Close)

	for _, path := range []string{"/api/employees/99", "/api/nope"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/employees/99", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_RejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(NewHandler(Seed(2), Options{}))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/employees", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"roster-cli/internal/fixture"
	"roster-cli/internal/logging"
	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureClient(t *testing.T, n int) (*Client, *fixture.DB) {
	t.Helper()
	db := fixture.Seed(n)
	srv := httptest.NewServer(fixture.NewHandler(db, fixture.Options{}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	return c, db
}

func TestListParams(t *testing.T) {
	q := query.Default()
	q.Text = "  ada "
	q.Status = query.StatusOnLeave
	q = q.WithDepartment(3)
	q.Page = 2
	q.PageSize = 20
	q.Sort = query.SortSalary
	q.Order = query.Desc

	got := ListParams(q)
	assert.Equal(t, "2", got.Get("_page"))
	assert.Equal(t, "20", got.Get("_limit"))
	assert.Equal(t, "salary", got.Get("_sort"))
	assert.Equal(t, "desc", got.Get("_order"))
	assert.Equal(t, "ada", got.Get("q"))
	assert.Equal(t, "3", got.Get("departmentId"))
	assert.Equal(t, "on_leave", got.Get("status"))

	plain := ListParams(query.Default())
	for _, k := range []string{"q", "departmentId", "status"} {
		assert.NotContains(t, plain, k)
	}
}

func TestListEmployees_AgainstFixture(t *testing.T) {
	c, _ := newFixtureClient(t, 25)

	page, err := c.ListEmployees(context.Background(), query.Default())
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 25, page.Total)

	q := query.Default()
	q.Page = 3
	page, err = c.ListEmployees(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 25, page.Total)
}

func TestListEmployees_MissingTotalIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListEmployees(context.Background(), query.Default())
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "list employees", de.Op)
}

func TestListEmployees_ServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListEmployees(context.Background(), query.Default())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Contains(t, err.Error(), "boom")
}

func TestListEmployees_MalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Total-Count", "3")
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListEmployees(context.Background(), query.Default())
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestEmployeeCRUD(t *testing.T) {
	c, db := newFixtureClient(t, 3)
	ctx := context.Background()

	created, err := c.CreateEmployee(ctx, model.EmployeeInput{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
		DepartmentID: 1, Status: model.StatusActive, Salary: 120000, HireDate: "2021-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, 4, db.Len())

	got, err := c.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", got.FullName())

	in := got.Input()
	in.Title = "Rear Admiral"
	updated, err := c.UpdateEmployee(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Rear Admiral", updated.Title)

	require.NoError(t, c.DeleteEmployee(ctx, created.ID))
	err = c.DeleteEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, created.ID, nf.ID)

	_, err = c.GetEmployee(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.UpdateEmployee(ctx, 999, in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDepartmentsAndAll(t *testing.T) {
	c, _ := newFixtureClient(t, 14)

	depts, err := c.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Len(t, depts, 6)

	all, err := c.AllEmployees(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 14)
}

func TestRequestsCarryRequestID(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get(HeaderRequestID))
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, _ = c.ListDepartments(context.Background())
	_, _ = c.ListDepartments(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestCancelledContextIsTransportError(t *testing.T) {
	db := fixture.Seed(5)
	srv := httptest.NewServer(fixture.NewHandler(db, fixture.Options{Latency: time.Second}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ListEmployees(ctx, query.Default())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "::"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestWithTimeoutLeavesSharedHTTPClientAlone(t *testing.T) {
	db := fixture.Seed(5)
	srv := httptest.NewServer(fixture.NewHandler(db, fixture.Options{Latency: time.Second}))
	t.Cleanup(srv.Close)

	shared := &http.Client{}
	c, err := New(srv.URL+"/api", WithHTTPClient(shared), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	assert.Zero(t, shared.Timeout)

	_, err = c.ListEmployees(context.Background(), query.Default())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Zero(t, shared.Timeout)
}

func TestRequestLogsPreferContextLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	var clientBuf, ctxBuf bytes.Buffer
	c, err := New(srv.URL, WithLogger(zerolog.New(&clientBuf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	ctx := logging.WithFields(context.Background(), zerolog.New(&ctxBuf).Level(zerolog.DebugLevel),
		map[string]any{"command": "roster departments list"})
	_, err = c.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Contains(t, ctxBuf.String(), `"command":"roster departments list"`)
	assert.Contains(t, ctxBuf.String(), `"message":"api request"`)
	assert.Empty(t, clientBuf.String())

	_, err = c.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Contains(t, clientBuf.String(), `"message":"api request"`)
}

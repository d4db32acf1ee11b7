package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"roster-cli/internal/fixture"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// newCLIEnv starts a seeded fixture API and returns the global flags pointing at it.
func newCLIEnv(t *testing.T, n int) []string {
	t.Helper()
	for _, k := range []string{"ROSTER_API_URL", "ROSTER_API_TIMEOUT", "ROSTER_LOG_FILE", "ROSTER_LOG_LEVEL", "ROSTER_STATE_DIR", "ROSTER_TUI_THEME"} {
		t.Setenv(k, "")
	}
	srv := httptest.NewServer(fixture.NewHandler(fixture.Seed(n), fixture.Options{}))
	t.Cleanup(srv.Close)
	return []string{"--api-url", srv.URL + "/api", "--state-dir", t.TempDir(), "--log-level", "error"}
}

func mustEnv(t *testing.T, base []string, args ...string) map[string]any {
	t.Helper()
	all := append(append([]string{}, base...), args...)
	stdout, stderr, err := runCLI(t, all)
	if err != nil {
		t.Fatalf("command failed: roster %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	if meta, ok := env["meta"]; ok && meta != nil {
		if _, ok := meta.(map[string]any); !ok {
			t.Fatalf("expected meta to be object; got %T", meta)
		}
	}
	if hints, ok := env["_hints"]; ok && hints != nil {
		if _, ok := hints.([]any); !ok {
			t.Fatalf("expected _hints to be list; got %T", hints)
		}
	}
	return env
}

func mustFail(t *testing.T, base []string, wantStderr string, args ...string) {
	t.Helper()
	all := append(append([]string{}, base...), args...)
	stdout, stderr, err := runCLI(t, all)
	if err == nil {
		t.Fatalf("expected roster %v to fail; stdout:\n%s", args, string(stdout))
	}
	if !strings.Contains(string(stderr), wantStderr) {
		t.Fatalf("expected stderr to contain %q; got:\n%s", wantStderr, string(stderr))
	}
}

func TestEmployeesList_Envelope(t *testing.T) {
	base := newCLIEnv(t, 25)

	env := mustEnv(t, base, "employees", "list", "--status", "active", "--page-size", "5")
	items, ok := env["data"].([]any)
	if !ok || len(items) != 5 {
		t.Fatalf("expected 5 items; got: %#v", env["data"])
	}
	meta := env["meta"].(map[string]any)
	if got := meta["total"]; got != float64(15) {
		t.Fatalf("expected total 15, got %v", got)
	}
	if got := meta["totalPages"]; got != float64(3) {
		t.Fatalf("expected 3 pages, got %v", got)
	}
	wantLoc := "/employees?order=asc&page=1&pageSize=5&sort=lastName&status=active"
	if got := meta["location"]; got != wantLoc {
		t.Fatalf("location: got %v want %s", got, wantLoc)
	}
	hints, _ := env["_hints"].([]any)
	if len(hints) != 1 || !strings.Contains(hints[0].(string), "page=2") {
		t.Fatalf("expected a next-page hint; got %#v", env["_hints"])
	}
	for _, it := range items {
		if st := it.(map[string]any)["status"]; st != "active" {
			t.Fatalf("expected only active employees, got %v", st)
		}
	}
}

func TestEmployeesList_FlagsOverrideLocation(t *testing.T) {
	base := newCLIEnv(t, 25)

	env := mustEnv(t, base, "employees", "list", "--location", "/employees?status=inactive&page=9&pageSize=2", "--page", "1")
	meta := env["meta"].(map[string]any)
	if meta["total"] != float64(5) || meta["page"] != float64(1) || meta["pageSize"] != float64(2) {
		t.Fatalf("unexpected meta: %#v", meta)
	}

	// Malformed location parameters fall back to defaults instead of failing.
	env = mustEnv(t, base, "employees", "list", "--location", "/employees?page=abc&sort=bogus")
	meta = env["meta"].(map[string]any)
	if meta["location"] != "/employees?order=asc&page=1&pageSize=10&sort=lastName" {
		t.Fatalf("expected default query, got %v", meta["location"])
	}
}

func TestEmployeesList_InvalidFlags(t *testing.T) {
	base := newCLIEnv(t, 5)

	mustFail(t, base, "invalid --status", "employees", "list", "--status", "retired")
	mustFail(t, base, "invalid --sort", "employees", "list", "--sort", "email")
	mustFail(t, base, "invalid --order", "employees", "list", "--order", "up")
	mustFail(t, base, "invalid --page", "employees", "list", "--page", "0")
	mustFail(t, base, "not a /employees location", "employees", "list", "--location", "/dashboard")
	mustFail(t, base, "unknown format", "--format", "edn", "employees", "list")
}

func TestEmployees_CreateGetUpdateDelete(t *testing.T) {
	base := newCLIEnv(t, 3)

	created := mustEnv(t, base, "employees", "create",
		"--first", "Grace", "--last", "Hopper", "--email", "grace@example.com",
		"--department", "1", "--salary", "120000", "--hire-date", "2024-01-02", "--notes", "**Admiral**")
	data := created["data"].(map[string]any)
	id := int(data["id"].(float64))
	if id < 1 || data["status"] != "active" {
		t.Fatalf("unexpected created employee: %#v", data)
	}
	idArg := strconv.Itoa(id)

	got := mustEnv(t, base, "employees", "get", idArg)
	if got["data"].(map[string]any)["lastName"] != "Hopper" {
		t.Fatalf("get: %#v", got["data"])
	}
	if got["meta"].(map[string]any)["location"] != "/employees/"+idArg {
		t.Fatalf("get meta: %#v", got["meta"])
	}

	updated := mustEnv(t, base, "employees", "update", idArg, "--title", "Rear Admiral", "--status", "on_leave")
	u := updated["data"].(map[string]any)
	if u["title"] != "Rear Admiral" || u["status"] != "on_leave" || u["firstName"] != "Grace" || u["notes"] != "**Admiral**" {
		t.Fatalf("update should only change the passed flags: %#v", u)
	}

	mustFail(t, base, "without --yes", "employees", "delete", idArg)
	deleted := mustEnv(t, base, "employees", "delete", idArg, "--yes")
	if msg := deleted["data"].(map[string]any)["message"]; msg != "Deleted Grace Hopper" {
		t.Fatalf("delete message: %v", msg)
	}
	mustFail(t, base, "not found", "employees", "get", idArg)
	mustFail(t, base, "not found", "employees", "delete", idArg, "--yes")
}

func TestEmployeesCreate_Validation(t *testing.T) {
	base := newCLIEnv(t, 1)

	mustFail(t, base, "invalid --last", "employees", "create", "--first", "Solo")
	mustFail(t, base, "invalid --status", "employees", "create", "--first", "A", "--last", "B", "--status", "gone")
	mustFail(t, base, "invalid --hire-date", "employees", "create", "--first", "A", "--last", "B", "--hire-date", "02/01/2024")
	mustFail(t, base, "invalid employee id", "employees", "get", "abc")
}

func TestEmployeesExport(t *testing.T) {
	base := newCLIEnv(t, 25)
	path := filepath.Join(t.TempDir(), "leave.xlsx")

	env := mustEnv(t, base, "employees", "export", "--status", "on_leave", "-o", path)
	data := env["data"].(map[string]any)
	if data["employees"] != "5" || data["path"] != path {
		t.Fatalf("unexpected export result: %#v", data)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("expected workbook at %s: %v", path, err)
	}

	mustFail(t, base, "missing -o/--output", "employees", "export")
}

func TestDepartmentsAndDashboard(t *testing.T) {
	base := newCLIEnv(t, 25)

	deps := mustEnv(t, base, "departments", "list")
	if xs, _ := deps["data"].([]any); len(xs) != 6 {
		t.Fatalf("expected 6 departments; got %#v", deps["data"])
	}

	dash := mustEnv(t, base, "dashboard")
	d := dash["data"].(map[string]any)
	if d["headcount"] != float64(25) || d["active"] != float64(15) || d["onLeave"] != float64(5) || d["inactive"] != float64(5) {
		t.Fatalf("unexpected summary: %#v", d)
	}
}

func TestBookmarks_AddListRemove(t *testing.T) {
	base := newCLIEnv(t, 1)

	added := mustEnv(t, base, "bookmarks", "add", "leave", "/employees?status=on_leave")
	xs := added["data"].([]any)
	wantLoc := "/employees?order=asc&page=1&pageSize=10&sort=lastName&status=on_leave"
	if loc := xs[0].(map[string]any)["location"]; loc != wantLoc {
		t.Fatalf("expected canonical location, got %v", loc)
	}

	mustEnv(t, base, "bookmarks", "add", "board", "/dashboard")
	list := mustEnv(t, base, "bookmarks", "list")
	var names []string
	for _, b := range list["data"].([]any) {
		names = append(names, b.(map[string]any)["name"].(string))
	}
	if !reflect.DeepEqual(names, []string{"board", "leave"}) {
		t.Fatalf("expected bookmarks in name order, got %v", names)
	}

	mustEnv(t, base, "bookmarks", "rm", "leave")
	mustFail(t, base, "bookmark not found: leave", "bookmarks", "rm", "leave")
	mustFail(t, base, "bookmark not found: nope", "bookmarks", "open", "nope")
}

func TestTableFormat(t *testing.T) {
	base := newCLIEnv(t, 3)

	stdout, stderr, err := runCLI(t, append(base, "--format", "table", "employees", "list"))
	if err != nil {
		t.Fatalf("table list failed: %v\n%s", err, string(stderr))
	}
	out := string(stdout)
	for _, want := range []string{"Name", "Department", "Engineering"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table output to contain %q:\n%s", want, out)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("table output should not be JSON:\n%s", out)
	}
}

func TestAPIUnreachableHint(t *testing.T) {
	for _, k := range []string{"ROSTER_API_URL", "ROSTER_STATE_DIR"} {
		t.Setenv(k, "")
	}
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	base := []string{"--api-url", url + "/api", "--state-dir", t.TempDir(), "--log-level", "error"}
	mustFail(t, base, "is the API running?", "departments", "list")
}

func TestForwardedArgs(t *testing.T) {
	app := &App{StateDir: "/tmp/roster", APIURL: "http://api.test/api", Theme: " dark ", Format: "json"}
	got := forwardedArgs(app, "/dashboard")
	want := []string{"--state-dir", "/tmp/roster", "--api-url", "http://api.test/api", "--theme", "dark", "--location", "/dashboard"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := forwardedArgs(&App{}, ""); len(got) != 0 {
		t.Fatalf("expected no args, got %v", got)
	}
}

func TestHostForURL(t *testing.T) {
	if got := hostForURL(":3000"); got != "localhost:3000" {
		t.Fatalf("got %q", got)
	}
	if got := hostForURL("127.0.0.1:3000"); got != "127.0.0.1:3000" {
		t.Fatalf("got %q", got)
	}
}

func TestDocs(t *testing.T) {
	base := newCLIEnv(t, 1)

	env := mustEnv(t, base, "docs")
	topics, _ := env["data"].([]any)
	if len(topics) < 4 {
		t.Fatalf("expected topics; got %#v", env["data"])
	}

	env = mustEnv(t, base, "docs", "locations")
	if env["data"].(map[string]any)["title"] != "Locations" {
		t.Fatalf("unexpected topic: %#v", env["data"])
	}

	stdout, _, err := runCLI(t, append(base, "docs", "keys", "--raw"))
	if err != nil || !strings.HasPrefix(string(stdout), "# TUI keys") {
		t.Fatalf("raw docs: err=%v\n%s", err, string(stdout))
	}

	mustFail(t, base, "unknown docs topic", "docs", "nope")
}

func TestCommandLogsCarryCommandPath(t *testing.T) {
	base := newCLIEnv(t, 5)
	logFile := filepath.Join(t.TempDir(), "roster.log")

	mustEnv(t, base, "--log-level", "debug", "--log-file", logFile, "departments", "list")

	b, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if strings.Contains(line, `"message":"api request"`) {
			if !strings.Contains(line, `"command":"roster departments list"`) {
				t.Fatalf("request log missing command field: %s", line)
			}
			return
		}
	}
	t.Fatalf("no api request logged:\n%s", b)
}

package tools

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/database"
	"campus/entities"
	"campus/pkg/campusinfo"
	"campus/pkg/student/repositoryImp"
	"campus/pkg/student/service"
	"campus/pkg/student/serviceImp"
	"campus/pkg/websearch"
)

func newStudentService(t *testing.T) service.StudentService {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Student{}, &entities.ActivityLog{}))
	return serviceImp.New(repositoryImp.New(db), nil)
}

func registryFor(ts []Tool) *Registry { return NewRegistry(ts...) }

func call(t *testing.T, r *Registry, name string, args map[string]any) any {
	t.Helper()
	tool, ok := r.Get(name)
	require.True(t, ok, name)
	out, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)
	return out
}

func TestStudentToolsLifecycle(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))

	call(t, r, "add_student", map[string]any{
		"id": "S-1", "name": "Ayesha Khan", "department": "Computer Science", "email": "ayesha@uaf.edu.pk",
	})
	call(t, r, "add_student", map[string]any{
		"id": "S-2", "name": "Bilal Ahmed", "department": "Agronomy", "email": "bilal@uaf.edu.pk",
	})

	got := call(t, r, "get_student", map[string]any{"id": "S-1"})
	st, ok := got.(*entities.Student)
	require.True(t, ok)
	assert.Equal(t, "Ayesha Khan", st.Name)

	total := call(t, r, "get_total_students", nil)
	assert.EqualValues(t, 2, total)

	call(t, r, "update_student", map[string]any{"id": "S-1", "field": "department", "new_value": "Agronomy"})
	got = call(t, r, "get_student", map[string]any{"id": "S-1"})
	assert.Equal(t, "Agronomy", got.(*entities.Student).Department)

	del := call(t, r, "delete_student", map[string]any{"id": "S-2"})
	assert.Equal(t, map[string]any{"deleted": true}, del)
	total = call(t, r, "get_total_students", nil)
	assert.EqualValues(t, 1, total)
}

func TestUpdateStudentRejectsUnknownField(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))
	call(t, r, "add_student", map[string]any{
		"id": "S-1", "name": "Ayesha", "department": "CS", "email": "a@uaf.edu.pk",
	})

	tool, _ := r.Get("update_student")
	_, err := tool.Execute(context.Background(), map[string]any{
		"id": "S-1", "field": "student_id", "new_value": "S-99",
	})
	require.Error(t, err)
}

func TestGetStudentMissingReturnsEmptyObject(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))
	got := call(t, r, "get_student", map[string]any{"id": "nope"})
	assert.Equal(t, map[string]any{}, got)
}

func TestSpecificDepartmentCountCaseInsensitive(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))
	call(t, r, "add_student", map[string]any{"id": "S-1", "name": "A", "department": "Computer Science", "email": "a@x"})
	call(t, r, "add_student", map[string]any{"id": "S-2", "name": "B", "department": "Computer Science", "email": "b@x"})
	call(t, r, "add_student", map[string]any{"id": "S-3", "name": "C", "department": "Agronomy", "email": "c@x"})

	got := call(t, r, "get_students_count_by_specific_department", map[string]any{"department_name": "computer science"}).(map[string]any)
	assert.Equal(t, "Computer Science", got["department"])
	assert.EqualValues(t, 2, got["count"])

	got = call(t, r, "get_students_count_by_specific_department", map[string]any{"department_name": "Physics"}).(map[string]any)
	assert.EqualValues(t, 0, got["count"])
	msg := got["message"].(string)
	assert.Contains(t, msg, "Available departments")
	assert.Contains(t, msg, "Computer Science")
	assert.Contains(t, msg, "Agronomy")
}

func TestAnalyticsSummaryShape(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))
	call(t, r, "add_student", map[string]any{"id": "S-1", "name": "A", "department": "CS", "email": "a@x"})
	call(t, r, "add_student", map[string]any{"id": "S-2", "name": "B", "department": "CS", "email": "b@x"})

	got := call(t, r, "get_campus_analytics_summary", nil).(map[string]any)
	assert.EqualValues(t, 2, got["total_students"])
	// creation logs activity, so both count as active this week
	assert.EqualValues(t, 2, got["active_last_7_days"])
	assert.Equal(t, 100.0, got["active_percentage"])
	insights := got["insights"].(map[string]any)
	assert.Equal(t, "CS", insights["most_popular_dept"])
	assert.Equal(t, "High", insights["engagement_level"])
}

func TestAnalyticsSummaryEmptyDatabase(t *testing.T) {
	r := registryFor(StudentTools(newStudentService(t)))
	got := call(t, r, "get_campus_analytics_summary", nil).(map[string]any)
	assert.EqualValues(t, 0, got["total_students"])
	assert.Equal(t, 0.0, got["active_percentage"])
	insights := got["insights"].(map[string]any)
	assert.Equal(t, "None", insights["most_popular_dept"])
	assert.Equal(t, "Low", insights["engagement_level"])
}

func TestCampusInfoTools(t *testing.T) {
	r := registryFor(CampusTools(campusinfo.Defaults(), nil))

	hours := call(t, r, "get_library_hours", nil).(map[string]any)
	assert.NotEmpty(t, hours["library_hours"])
	timings := call(t, r, "get_cafeteria_timings", nil).(map[string]any)
	assert.NotEmpty(t, timings["cafeteria_timings"])
	events := call(t, r, "get_event_schedule", nil)
	assert.NotNil(t, events.(map[string]any)["events"])
}

type recordingNotifier struct {
	events []string
	err    error
}

func (r *recordingNotifier) Notify(event string, payload map[string]string) error {
	r.events = append(r.events, event)
	return r.err
}

func TestSendEmailTool(t *testing.T) {
	n := &recordingNotifier{}
	r := registryFor(CampusTools(campusinfo.Defaults(), n))

	got := call(t, r, "send_email", map[string]any{"student_id": "S-1", "message": "fee due"}).(map[string]any)
	assert.Equal(t, "queued", got["status"])
	assert.Equal(t, []string{"student_message"}, n.events)

	n.err = errors.New("smtp down")
	got = call(t, r, "send_email", map[string]any{"student_id": "S-1", "message": "fee due"}).(map[string]any)
	assert.Equal(t, "failed", got["status"])
}

type scriptedAnswerer struct {
	resp string
	err  error
}

func (s scriptedAnswerer) Answer(_ context.Context, _ string) (string, error) {
	return s.resp, s.err
}

type scriptedSearcher struct{ hits []websearch.Hit }

func (s scriptedSearcher) Search(string, int) []websearch.Hit { return s.hits }

func TestKnowledgeToolPrimaryPath(t *testing.T) {
	tool := KnowledgeTool(scriptedAnswerer{resp: "UAF was founded in 1906."}, scriptedSearcher{})
	out, err := tool.Execute(context.Background(), map[string]any{"query": "uaf history"})
	require.NoError(t, err)
	got := out.(map[string]any)
	assert.Equal(t, "UAF was founded in 1906.", got["response"])
	assert.Equal(t, "Knowledge Base + Web Search", got["source"])
}

func TestKnowledgeToolWebFallback(t *testing.T) {
	tool := KnowledgeTool(
		scriptedAnswerer{err: errors.New("pipeline down")},
		scriptedSearcher{hits: []websearch.Hit{{Title: "UAF", Snippet: "official site", Source: "DuckDuckGo"}}},
	)
	out, err := tool.Execute(context.Background(), map[string]any{"query": "uaf"})
	require.NoError(t, err)
	got := out.(map[string]any)
	assert.Equal(t, "Web Search Only", got["source"])
	assert.Contains(t, got["response"], "**UAF**")
	assert.Contains(t, got["response"], "official site")
}

func TestKnowledgeToolApologeticTerminal(t *testing.T) {
	sentinel := []websearch.Hit{{Title: "Search Error", Snippet: "Could not perform web search", Source: "Error"}}
	tool := KnowledgeTool(scriptedAnswerer{err: errors.New("down")}, scriptedSearcher{hits: sentinel})
	out, err := tool.Execute(context.Background(), map[string]any{"query": "anything"})
	require.NoError(t, err)
	got := out.(map[string]any)
	assert.Equal(t, "No Results", got["source"])
	assert.Contains(t, got["response"], "I'm sorry")
}

func TestRegistryDedupAndOrder(t *testing.T) {
	svc := newStudentService(t)
	ts := StudentTools(svc)
	r := NewRegistry(append(ts, ts...)...)
	assert.Len(t, r.List(), len(ts))
	specs := r.Specs()
	require.Len(t, specs, len(ts))
	assert.Equal(t, "add_student", specs[0].Name)
}

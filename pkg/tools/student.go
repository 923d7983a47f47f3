package tools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"campus/pkg/student/service"
)

// StudentTools is the record-CRUD and analytics slice of the capability set.
func StudentTools(s service.StudentService) []Tool {
	return []Tool{
		&tool{
			name: "add_student",
			desc: "Add a student with name, id, department, email.",
			params: schema(map[string]any{
				"id":         strProp("Unique student id"),
				"name":       strProp("Full name"),
				"department": strProp("Department name"),
				"email":      strProp("Email address"),
			}, "id", "name", "department", "email"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				id, err := argString(args, "id")
				if err != nil {
					return nil, err
				}
				name, err := argString(args, "name")
				if err != nil {
					return nil, err
				}
				dept, _ := argString(args, "department")
				email, _ := argString(args, "email")
				return s.Add(service.CreateStudent{StudentID: id, Name: name, Department: dept, Email: email})
			},
		},
		&tool{
			name:   "get_student",
			desc:   "Get a student by id.",
			params: schema(map[string]any{"id": strProp("Student id")}, "id"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				id, err := argString(args, "id")
				if err != nil {
					return nil, err
				}
				st, err := s.Get(id)
				if err != nil {
					return nil, err
				}
				if st == nil {
					return map[string]any{}, nil
				}
				return st, nil
			},
		},
		&tool{
			name: "update_student",
			desc: "Update a student's field (name, department or email) to a new value.",
			params: schema(map[string]any{
				"id":        strProp("Student id"),
				"field":     strProp("One of: name, department, email"),
				"new_value": strProp("New value for the field"),
			}, "id", "field", "new_value"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				id, err := argString(args, "id")
				if err != nil {
					return nil, err
				}
				field, err := argString(args, "field")
				if err != nil {
					return nil, err
				}
				value, err := argString(args, "new_value")
				if err != nil {
					return nil, err
				}
				st, err := s.UpdateFields(id, map[string]string{field: value})
				if err != nil {
					return nil, err
				}
				if st == nil {
					return map[string]any{}, nil
				}
				return st, nil
			},
		},
		&tool{
			name:   "delete_student",
			desc:   "Delete a student by id.",
			params: schema(map[string]any{"id": strProp("Student id")}, "id"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				id, err := argString(args, "id")
				if err != nil {
					return nil, err
				}
				ok, err := s.Delete(id)
				if err != nil {
					return nil, err
				}
				return map[string]any{"deleted": ok}, nil
			},
		},
		&tool{
			name:   "list_students",
			desc:   "List all students.",
			params: schema(nil),
			run: func(_ context.Context, _ map[string]any) (any, error) {
				return s.List()
			},
		},
		&tool{
			name:   "get_total_students",
			desc:   "Get the total number of students.",
			params: schema(nil),
			run: func(_ context.Context, _ map[string]any) (any, error) {
				return s.Total()
			},
		},
		&tool{
			name:   "get_students_by_department",
			desc:   "Get count of students grouped by department in a user-friendly format.",
			params: schema(nil),
			run: func(_ context.Context, _ map[string]any) (any, error) {
				data, err := s.ByDepartment()
				if err != nil {
					return nil, err
				}
				out := map[string]any{
					"summary":     fmt.Sprintf("We have students across %d departments", len(data)),
					"departments": data,
				}
				if len(data) > 0 {
					out["top_department"] = data[0].Department
					out["top_count"] = data[0].Count
				} else {
					out["top_department"] = "None"
					out["top_count"] = 0
				}
				return out, nil
			},
		},
		&tool{
			name: "get_students_count_by_specific_department",
			desc: "Get count of students in a specific department by name (e.g., 'Computer Science').",
			params: schema(map[string]any{
				"department_name": strProp("Department name, case-insensitive"),
			}, "department_name"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				name, err := argString(args, "department_name")
				if err != nil {
					return nil, err
				}
				all, err := s.ByDepartment()
				if err != nil {
					return nil, err
				}
				for _, d := range all {
					if strings.EqualFold(d.Department, name) {
						return map[string]any{
							"department": d.Department,
							"count":      d.Count,
							"message":    fmt.Sprintf("There are %d students enrolled in %s", d.Count, d.Department),
						}, nil
					}
				}
				avail := make([]string, 0, len(all))
				for _, d := range all {
					avail = append(avail, d.Department)
				}
				return map[string]any{
					"department": name,
					"count":      0,
					"message":    fmt.Sprintf("No students found in %q. Available departments: %s", name, strings.Join(avail, ", ")),
				}, nil
			},
		},
		&tool{
			name:   "get_recent_onboarded_students",
			desc:   "Get recently onboarded students with optional limit.",
			params: schema(map[string]any{"limit": intProp("Max students to return, default 5")}),
			run: func(_ context.Context, args map[string]any) (any, error) {
				return s.Recent(argInt(args, "limit", 5))
			},
		},
		&tool{
			name:   "get_active_students_last_7_days",
			desc:   "Get count of students active in the last 7 days.",
			params: schema(nil),
			run: func(_ context.Context, _ map[string]any) (any, error) {
				return s.ActiveLast7Days()
			},
		},
		&tool{
			name:   "get_campus_analytics_summary",
			desc:   "Get a comprehensive, user-friendly campus analytics summary.",
			params: schema(nil),
			run: func(_ context.Context, _ map[string]any) (any, error) {
				total, err := s.Total()
				if err != nil {
					return nil, err
				}
				byDept, err := s.ByDepartment()
				if err != nil {
					return nil, err
				}
				recent, err := s.Recent(3)
				if err != nil {
					return nil, err
				}
				active, err := s.ActiveLast7Days()
				if err != nil {
					return nil, err
				}

				pct := 0.0
				if total > 0 {
					pct = math.Round(float64(active)/float64(total)*1000) / 10
				}
				engagement := "Low"
				if pct > 70 {
					engagement = "High"
				} else if pct > 40 {
					engagement = "Medium"
				}
				topDept := "None"
				if len(byDept) > 0 {
					topDept = byDept[0].Department
				}
				recentOut := make([]map[string]string, 0, len(recent))
				for _, st := range recent {
					recentOut = append(recentOut, map[string]string{"name": st.Name, "department": st.Department})
				}
				deptTop := byDept
				if len(deptTop) > 3 {
					deptTop = deptTop[:3]
				}
				return map[string]any{
					"total_students":       total,
					"active_last_7_days":   active,
					"active_percentage":    pct,
					"department_breakdown": deptTop,
					"total_departments":    len(byDept),
					"recent_students":      recentOut,
					"insights": map[string]any{
						"most_popular_dept": topDept,
						"engagement_level":  engagement,
					},
				}, nil
			},
		},
	}
}

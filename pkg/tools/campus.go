package tools

import (
	"context"
	"log"

	"campus/pkg/campusinfo"
	"campus/pkg/notify"
)

// CampusTools covers the static informational lookups and the outbound
// notification trigger.
func CampusTools(info campusinfo.Info, n notify.Notifier) []Tool {
	if n == nil {
		n = notify.LogOnly{}
	}
	return []Tool{
		&tool{
			name:   "get_cafeteria_timings",
			desc:   "Get cafeteria operating hours.",
			params: schema(nil),
			run: func(context.Context, map[string]any) (any, error) {
				return map[string]any{"cafeteria_timings": info.CafeteriaTimings}, nil
			},
		},
		&tool{
			name:   "get_library_hours",
			desc:   "Get library operating hours.",
			params: schema(nil),
			run: func(context.Context, map[string]any) (any, error) {
				return map[string]any{"library_hours": info.LibraryHours}, nil
			},
		},
		&tool{
			name:   "get_event_schedule",
			desc:   "Get upcoming campus events schedule.",
			params: schema(nil),
			run: func(context.Context, map[string]any) (any, error) {
				return map[string]any{"events": info.Events}, nil
			},
		},
		&tool{
			name: "send_email",
			desc: "Send email notification to a student.",
			params: schema(map[string]any{
				"student_id": strProp("Student id"),
				"message":    strProp("Message body"),
			}, "student_id", "message"),
			run: func(_ context.Context, args map[string]any) (any, error) {
				id, err := argString(args, "student_id")
				if err != nil {
					return nil, err
				}
				msg, err := argString(args, "message")
				if err != nil {
					return nil, err
				}
				// Best-effort: a failed send is reported, never raised.
				status := "queued"
				if err := n.Notify("student_message", map[string]string{"student_id": id, "message": msg}); err != nil {
					log.Printf("[tools] send_email failed: %v", err)
					status = "failed"
				}
				return map[string]any{"status": status, "student_id": id, "message": msg}, nil
			},
		},
	}
}

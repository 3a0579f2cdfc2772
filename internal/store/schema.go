package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	sessionsTable         = "sessions"
	taskResponsesTable    = "task_responses"
	taskAnnotationsTable  = "task_annotations"
	sessionEventsTable    = "session_events"
	llmRequestEventsTable = "llm_request_events"
)

const textSize = 2147483647

var (
	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "uuid", Type: field.TypeString, Unique: true},
		{Name: "language", Type: field.TypeString},
		{Name: "learner_name", Type: field.TypeString, Default: ""},
		{Name: "learner_id", Type: field.TypeString, Default: ""},
		{Name: "interview_date", Type: field.TypeTime},
		{Name: "initial_level", Type: field.TypeInt},
		{Name: "current_level", Type: field.TypeInt},
		{Name: "final_level", Type: field.TypeString},
		{Name: "final_reasoning", Type: field.TypeString, Size: textSize},
		{Name: "created_at", Type: field.TypeTime},
	}
	sessionsTableDef = &schema.Table{
		Name:       sessionsTable,
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "session_created_at", Columns: []*schema.Column{sessionsColumns[10]}},
		},
	}

	taskResponsesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "task_name", Type: field.TypeString},
		{Name: "task_level", Type: field.TypeInt},
		{Name: "rating", Type: field.TypeInt},
		{Name: "session_id", Type: field.TypeInt64},
	}
	taskResponsesTableDef = &schema.Table{
		Name:       taskResponsesTable,
		Columns:    taskResponsesColumns,
		PrimaryKey: []*schema.Column{taskResponsesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "task_responses_sessions_tasks",
				Columns:    []*schema.Column{taskResponsesColumns[5]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "taskresponse_session_id_position",
				Unique:  true,
				Columns: []*schema.Column{taskResponsesColumns[5], taskResponsesColumns[1]},
			},
		},
	}

	taskAnnotationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "topic", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "prompt", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "comment", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeInt64},
	}
	taskAnnotationsTableDef = &schema.Table{
		Name:       taskAnnotationsTable,
		Columns:    taskAnnotationsColumns,
		PrimaryKey: []*schema.Column{taskAnnotationsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "task_annotations_sessions_annotations",
				Columns:    []*schema.Column{taskAnnotationsColumns[6]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "taskannotation_session_id_position",
				Unique:  true,
				Columns: []*schema.Column{taskAnnotationsColumns[6], taskAnnotationsColumns[1]},
			},
		},
	}

	// Event tables share the sequence/timestamp prefix so every event
	// type can be ordered against the others.
	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "phase", Type: field.TypeString, Default: ""},
		{Name: "level", Type: field.TypeInt, Default: 0},
		{Name: "outcome", Type: field.TypeString, Default: ""},
		{Name: "detail", Type: field.TypeString, Size: textSize, Default: ""},
	}
	sessionEventsTableDef = &schema.Table{
		Name:       sessionEventsTable,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "session_uuid", Type: field.TypeString, Default: ""},
		{Name: "task", Type: field.TypeString, Default: ""},
	}
	llmRequestEventsTableDef = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_session_uuid", Columns: []*schema.Column{llmRequestEventsColumns[13]}},
		},
	}

	tables = []*schema.Table{
		sessionsTableDef,
		taskResponsesTableDef,
		taskAnnotationsTableDef,
		sessionEventsTableDef,
		llmRequestEventsTableDef,
	}
)

func init() {
	taskResponsesTableDef.ForeignKeys[0].RefTable = sessionsTableDef
	taskAnnotationsTableDef.ForeignKeys[0].RefTable = sessionsTableDef
}

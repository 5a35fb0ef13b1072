package sqlgate

import (
	"fmt"
	"strings"

	"github.com/cuemby/hutch/pkg/types"
)

// GateName is the event type the dispatch gate claims.
const GateName = "sql"

// Parse event types emitted by the dispatch gate. The parsers that
// consume them are external collaborators registered by the embedder.
const (
	CreateTableParse   = "create_table_parse"
	IndexCreateParse   = "index_create_parse"
	ViewCreateParse    = "view_create_parse"
	TriggerCreateParse = "trigger_create_parse"
	DropTableParse     = "drop_table_parse"
	IndexDropParse     = "index_drop_parse"
	ViewDropParse      = "view_drop_parse"
	TriggerDropParse   = "trigger_drop_parse"
	InsertParse        = "insert_parse"
	SelectParse        = "select_parse"
	UpdateParse        = "update_parse"
	DeleteParse        = "delete_parse"
)

// DispatchGate is a PureGate that classifies a SQL statement by its
// leading keywords and re-emits it as the matching parse event. The
// original SQL carries through in the payload.
type DispatchGate struct{}

// New creates the SQL dispatch gate.
func New() *DispatchGate {
	return &DispatchGate{}
}

func (g *DispatchGate) Name() string {
	return GateName
}

func (g *DispatchGate) Transform(event types.Event) (types.Event, error) {
	sql, err := sqlOf(event)
	if err != nil {
		return types.Event{}, err
	}

	eventType, ok := classify(sql)
	if !ok {
		return types.NewEvent(types.EventError, map[string]any{
			"message": fmt.Sprintf("Unrecognized SQL: %s", sql),
		}), nil
	}
	return types.NewEvent(eventType, map[string]any{"sql": sql}), nil
}

// sqlOf extracts the statement from the event payload.
func sqlOf(event types.Event) (string, error) {
	data, ok := event.Data.(map[string]any)
	if !ok {
		return "", fmt.Errorf("sql event payload must be a map, got %T", event.Data)
	}
	sql, ok := data["sql"].(string)
	if !ok {
		return "", fmt.Errorf("sql event payload has no sql string")
	}
	return sql, nil
}

// classify matches the leading whitespace-trimmed, case-insensitive
// keywords. Two-word forms win over any one-word prefix.
func classify(sql string) (string, bool) {
	words := strings.Fields(strings.ToUpper(sql))

	first := ""
	second := ""
	third := ""
	if len(words) > 0 {
		first = words[0]
	}
	if len(words) > 1 {
		second = words[1]
	}
	if len(words) > 2 {
		third = words[2]
	}

	switch first {
	case "CREATE":
		switch second {
		case "TABLE":
			return CreateTableParse, true
		case "UNIQUE":
			if third == "INDEX" {
				return IndexCreateParse, true
			}
		case "INDEX":
			return IndexCreateParse, true
		case "VIEW":
			return ViewCreateParse, true
		case "TRIGGER":
			return TriggerCreateParse, true
		}
	case "DROP":
		switch second {
		case "TABLE":
			return DropTableParse, true
		case "INDEX":
			return IndexDropParse, true
		case "VIEW":
			return ViewDropParse, true
		case "TRIGGER":
			return TriggerDropParse, true
		}
	case "INSERT":
		return InsertParse, true
	case "SELECT":
		return SelectParse, true
	case "UPDATE":
		return UpdateParse, true
	case "DELETE":
		return DeleteParse, true
	}
	return "", false
}

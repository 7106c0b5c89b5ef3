package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openobserve/alertquery/internal/sqlgen"
	"github.com/openobserve/alertquery/internal/tree"
	"github.com/openobserve/alertquery/internal/wire"
)

// ErrNotFound is returned when no alert with the requested name exists.
var ErrNotFound = errors.New("alert not found")

// Alert is a stored alert definition in current shape.
type Alert struct {
	Name        string
	StreamName  string
	StreamType  string
	Conditions  *tree.Group
	Aggregation *sqlgen.Aggregation
}

// SaveAlert upserts an alert. Conditions are always written as the tagged
// version-2 envelope in canonical JSON - a legacy shape is never written
// back, whatever shape the row held before.
func (s *Store) SaveAlert(ctx context.Context, alert Alert) error {
	if alert.Name == "" {
		return fmt.Errorf("save alert: name is required")
	}
	if alert.Conditions == nil {
		return fmt.Errorf("save alert %q: conditions are required", alert.Name)
	}

	conditions, err := wire.Encode(wire.NewEnvelope(alert.Conditions))
	if err != nil {
		return fmt.Errorf("save alert %q: %w", alert.Name, err)
	}

	var aggregation sql.NullString
	if alert.Aggregation != nil {
		data, err := json.Marshal(alert.Aggregation)
		if err != nil {
			return fmt.Errorf("save alert %q: marshal aggregation: %w", alert.Name, err)
		}
		aggregation = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO alerts (name, stream_name, stream_type, conditions, aggregation, updated_seq)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			stream_name = excluded.stream_name,
			stream_type = excluded.stream_type,
			conditions  = excluded.conditions,
			aggregation = excluded.aggregation,
			updated_seq = alerts.updated_seq + 1
	`,
		alert.Name,
		alert.StreamName,
		alert.StreamType,
		string(conditions),
		aggregation,
	)
	if err != nil {
		return fmt.Errorf("save alert %q: %w", alert.Name, err)
	}
	return nil
}

// LoadAlert reads an alert and returns it in current shape, upgrading
// legacy condition payloads on the way out. The row itself is not
// rewritten here; the next SaveAlert does that.
func (s *Store) LoadAlert(ctx context.Context, name string) (Alert, error) {
	var (
		alert       Alert
		conditions  string
		aggregation sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, stream_name, stream_type, conditions, aggregation
		FROM alerts WHERE name = ?
	`, name).Scan(&alert.Name, &alert.StreamName, &alert.StreamType, &conditions, &aggregation)
	if errors.Is(err, sql.ErrNoRows) {
		return Alert{}, fmt.Errorf("load alert %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Alert{}, fmt.Errorf("load alert %q: %w", name, err)
	}

	env, err := wire.Decode(json.RawMessage(conditions))
	if err != nil {
		return Alert{}, fmt.Errorf("load alert %q: %w", name, err)
	}
	alert.Conditions = env.Conditions

	if aggregation.Valid && aggregation.String != "" {
		agg := &sqlgen.Aggregation{}
		if err := json.Unmarshal([]byte(aggregation.String), agg); err != nil {
			return Alert{}, fmt.Errorf("load alert %q: decode aggregation: %w", name, err)
		}
		alert.Aggregation = agg
	}
	return alert, nil
}

// ListAlerts returns the names of all stored alerts for a stream, ordered
// by name for deterministic output. An empty stream name lists everything.
func (s *Store) ListAlerts(ctx context.Context, streamName string) ([]string, error) {
	query := `SELECT name FROM alerts ORDER BY name COLLATE BINARY ASC`
	args := []any{}
	if streamName != "" {
		query = `SELECT name FROM alerts WHERE stream_name = ? ORDER BY name COLLATE BINARY ASC`
		args = append(args, streamName)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list alerts: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteAlert removes an alert. Deleting a missing alert is a no-op.
func (s *Store) DeleteAlert(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete alert %q: %w", name, err)
	}
	return nil
}

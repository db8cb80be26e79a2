package mutation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omnigrid/omnigrid/pkg/access"
	"github.com/omnigrid/omnigrid/pkg/audit"
	"github.com/omnigrid/omnigrid/pkg/directory"
	"github.com/omnigrid/omnigrid/pkg/observability"
	"github.com/omnigrid/omnigrid/pkg/table"
	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// CellUpdate proposes one cell write. Value is the raw string as entered or
// pasted; the engine coerces it against the column type.
type CellUpdate struct {
	RowID string
	Field string
	Value string
}

// Result summarizes a batch. Applied counts cells that actually changed;
// Skipped counts cells refused for missing write access. A proposed write
// whose value equals the current one counts in neither.
type Result struct {
	Applied int
	Skipped int
}

// Engine is the row store and batch mutation engine. One mutex serializes
// all mutation so a batch touching a row bumps its version exactly once.
type Engine struct {
	mu    sync.Mutex
	rows  map[string]*table.Row
	order []string

	dir      *directory.Directory
	auditLog *audit.Store
	logger   *observability.Logger
	metrics  *observability.Metrics

	now   func() time.Time
	newID func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithMetrics attaches Prometheus metrics to the engine
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the engine clock
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides row ID generation
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine creates an empty engine
func NewEngine(dir *directory.Directory, auditLog *audit.Store, logger *observability.Logger, opts ...Option) *Engine {
	e := &Engine{
		rows:     make(map[string]*table.Row),
		dir:      dir,
		auditLog: auditLog,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BatchUpdate applies a set of proposed cell writes for one workspace on
// behalf of actor. Access is re-derived per cell against the row's current
// state, so a status write earlier in the batch locks later writes to the
// same row. Updates naming unknown rows, rows of other workspaces, or
// invalid status values are dropped without effect. Missing write access is
// a skip count, never an error.
func (e *Engine) BatchUpdate(actor directory.User, ws *workspace.Workspace, updates []CellUpdate) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res Result
	changed := make(map[string]bool)

	for _, upd := range updates {
		row, ok := e.rows[upd.RowID]
		if !ok || row.WorkspaceID != ws.ID {
			continue
		}

		level := access.ColumnAccess(actor, row, upd.Field, ws)
		if level != workspace.AccessWrite {
			res.Skipped++
			continue
		}

		old := row.FieldString(upd.Field)
		var newVal string

		if upd.Field == table.MetaStatus {
			status := table.Status(upd.Value)
			if !status.Valid() {
				continue
			}
			newVal = upd.Value
			if old == newVal {
				continue
			}
			row.Status = status
		} else {
			col, found := ws.Column(upd.Field)
			if !found {
				continue
			}
			value := table.Coerce(col.Type, upd.Value)
			newVal = value.String()
			if old == newVal {
				continue
			}
			row.Fields[upd.Field] = value
		}

		e.appendAudit(actor, row, upd.Field, old, newVal)
		changed[row.ID] = true
		res.Applied++
	}

	now := e.now()
	for id := range changed {
		row := e.rows[id]
		row.Version++
		row.UpdatedAt = now
	}

	if e.metrics != nil {
		e.metrics.BatchesTotal.WithLabelValues(ws.ID).Inc()
		e.metrics.CellUpdatesApplied.WithLabelValues(ws.ID).Add(float64(res.Applied))
		e.metrics.CellUpdatesSkipped.WithLabelValues(ws.ID).Add(float64(res.Skipped))
	}
	if e.logger != nil {
		e.logger.WithActor(actor.ID, actor.Name).WithWorkspace(ws.ID).
			Infof("batch update: %d applied, %d skipped of %d proposed", res.Applied, res.Skipped, len(updates))
	}
	return res
}

// NewRow creates a DRAFT row owned by actor with typed zero values and
// stores it.
func (e *Engine) NewRow(actor directory.User, ws *workspace.Workspace) *table.Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	row := table.NewRow(e.newID(), ws.ID, actor.ID, e.now(), ws.Columns)
	e.insert(row)

	if e.metrics != nil {
		e.metrics.RowsCreatedTotal.WithLabelValues(ws.ID, "manual").Inc()
	}
	return row.Clone()
}

// InsertRows stores pre-built rows, assigning IDs where missing. Used by
// seed loading and workbook import; the whole batch is rejected on a
// duplicate ID so imports stay all-or-nothing.
func (e *Engine) InsertRows(rows []*table.Row, source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, row := range rows {
		if row.ID == "" {
			row.ID = e.newID()
		}
		if _, exists := e.rows[row.ID]; exists {
			return fmt.Errorf("row already exists: %s", row.ID)
		}
	}
	for _, row := range rows {
		e.insert(row.Clone())
		if e.metrics != nil {
			e.metrics.RowsCreatedTotal.WithLabelValues(row.WorkspaceID, source).Inc()
		}
	}
	return nil
}

// SubmitDrafts moves every DRAFT row actor owns in the workspace to PENDING
// and returns how many were submitted. Each submission is one audited status
// change with the usual version bump.
func (e *Engine) SubmitDrafts(actor directory.User, ws *workspace.Workspace) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	submitted := 0
	for _, id := range e.order {
		row := e.rows[id]
		if row.WorkspaceID != ws.ID || row.OwnerID != actor.ID || row.Status != table.StatusDraft {
			continue
		}

		e.appendAudit(actor, row, table.MetaStatus, string(table.StatusDraft), string(table.StatusPending))
		row.Status = table.StatusPending
		row.Version++
		row.UpdatedAt = now
		submitted++
	}

	if e.logger != nil && submitted > 0 {
		e.logger.WithActor(actor.ID, actor.Name).WithWorkspace(ws.ID).
			Infof("submitted %d draft rows for review", submitted)
	}
	return submitted
}

// VisibleRows lists the workspace rows actor may see, in insertion order,
// optionally narrowed by a case-insensitive substring search over the
// stringified schema fields and status.
func (e *Engine) VisibleRows(actor directory.User, ws *workspace.Workspace, query string) []*table.Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	denied := 0

	var visible []*table.Row
	for _, id := range e.order {
		row := e.rows[id]
		if row.WorkspaceID != ws.ID {
			continue
		}
		if !access.CanViewRowInWorkspace(actor, row, e.dir, ws) {
			denied++
			continue
		}
		if query != "" && !rowMatches(row, ws, query) {
			continue
		}
		visible = append(visible, row.Clone())
	}

	if e.metrics != nil && denied > 0 {
		e.metrics.RowViewDenials.WithLabelValues(ws.ID).Add(float64(denied))
	}
	return visible
}

// Get retrieves a copy of a row by ID
func (e *Engine) Get(rowID string) (*table.Row, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.rows[rowID]
	if !ok {
		return nil, false
	}
	return row.Clone(), true
}

// CountRows returns the number of rows held for a workspace
func (e *Engine) CountRows(workspaceID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, row := range e.rows {
		if row.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}

// insert stores a row. Callers must hold the mutex.
func (e *Engine) insert(row *table.Row) {
	e.rows[row.ID] = row
	e.order = append(e.order, row.ID)
	if e.metrics != nil {
		e.metrics.RowsTotal.WithLabelValues(row.WorkspaceID).Inc()
	}
}

// appendAudit records one accepted field change. Callers must hold the mutex.
func (e *Engine) appendAudit(actor directory.User, row *table.Row, field, old, newVal string) {
	e.auditLog.Append(audit.Entry{
		RowID:        row.ID,
		WorkspaceID:  row.WorkspaceID,
		OperatorName: actor.Name,
		Field:        field,
		OldValue:     old,
		NewValue:     newVal,
		Timestamp:    e.now(),
	})
	if e.metrics != nil {
		e.metrics.AuditEntriesTotal.WithLabelValues(row.WorkspaceID).Inc()
	}
}

func rowMatches(row *table.Row, ws *workspace.Workspace, query string) bool {
	if strings.Contains(strings.ToLower(string(row.Status)), query) {
		return true
	}
	for _, col := range ws.Columns {
		if strings.Contains(strings.ToLower(row.FieldString(col.Field)), query) {
			return true
		}
	}
	return false
}

// Package mirror replicates local collections to a remote tabular backend
// over HTTP, best-effort and non-blocking. The backend is an eventually
// consistent catch-up replica: pushes are insert-if-absent, pulls merge
// additively, and no failure here ever makes the local store unusable.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/logger"
	"github.com/dukaforge/storefront/pkg/types"
)

// row is the wire envelope for one remote record. The record itself travels
// as an opaque serialized payload in Data.
type row struct {
	TableType string `json:"table_type"`
	RecordID  string `json:"record_id"`
	Data      string `json:"data"`
	UpdatedAt string `json:"updated_at"`
}

// SyncError describes a failed mirror operation. Callers treat it as
// diagnostic: it is logged at the boundary, never propagated into local
// state handling.
type SyncError struct {
	Op    string
	Table string
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("mirror %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Adapter talks to the remote tabular backend. A zero endpoint disables the
// mirror entirely; every method then no-ops.
type Adapter struct {
	endpoint string
	client   *http.Client
	repo     *store.Repository
	log      logger.Logger
}

// NewAdapter creates an Adapter for the configured endpoint. A zero
// MirrorTimeout leaves the HTTP client on its defaults; the only hard
// ceiling in the system is the one VerifyStoreCode applies itself.
func NewAdapter(cfg types.Config, repo *store.Repository, log logger.Logger) *Adapter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Adapter{
		endpoint: cfg.MirrorEndpoint,
		client:   &http.Client{Timeout: cfg.MirrorTimeout},
		repo:     repo,
		log:      log,
	}
}

// Enabled reports whether a remote endpoint is configured.
func (a *Adapter) Enabled() bool { return a.endpoint != "" }

// identity is the dedup key for one record: normalized email for the
// customer collection when present, otherwise the record id, otherwise a
// freshly generated token.
func identity(table string, payload []byte) string {
	var probe struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(payload, &probe)

	if table == types.CustomersCollection && probe.Email != "" {
		return types.NormalizeEmail(probe.Email)
	}
	if probe.ID != "" {
		return probe.ID
	}
	return uuid.New().String()
}

// Push replicates records to the remote table with a pure insert-if-absent
// policy: existing remote records are never updated. Each record's dedup
// check scans the full remote snapshot for the table. Per-record failures
// are logged and skipped; Push reports only the first failure, for
// inspection by callers that otherwise fire and forget.
func (a *Adapter) Push(ctx context.Context, table string, records []any) *SyncError {
	if !a.Enabled() {
		return nil
	}

	var first *SyncError
	for _, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			a.log.WithField("table", table).Warn("record not serializable, skipped")
			continue
		}
		key := identity(table, payload)

		exists, err := a.remoteHas(ctx, table, key)
		if err != nil {
			if first == nil {
				first = &SyncError{Op: "push", Table: table, Err: err}
			}
			a.log.WithField("table", table).Warn("remote dedup check failed, record skipped")
			continue
		}
		if exists {
			continue
		}

		if err := a.insert(ctx, row{
			TableType: table,
			RecordID:  key,
			Data:      string(payload),
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			if first == nil {
				first = &SyncError{Op: "push", Table: table, Err: err}
			}
			a.log.WithField("table", table).Warn("remote insert failed, record skipped")
		}
	}
	return first
}

// remoteHas reports whether a record with the given identity key already
// exists in the remote table. Customer-like identities are compared by
// decoding each remote row's embedded payload.
func (a *Adapter) remoteHas(ctx context.Context, table, key string) (bool, error) {
	rows, err := a.fetchRows(ctx, table)
	if err != nil {
		return false, err
	}
	for _, rw := range rows {
		if table == types.CustomersCollection {
			var probe struct {
				Email string `json:"email"`
			}
			if json.Unmarshal([]byte(rw.Data), &probe) == nil &&
				types.NormalizeEmail(probe.Email) == key {
				return true, nil
			}
			continue
		}
		if rw.RecordID == key {
			return true, nil
		}
	}
	return false, nil
}

// insert posts one envelope row to the backend.
func (a *Adapter) insert(ctx context.Context, rw row) error {
	body, err := json.Marshal(rw)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// fetchRows retrieves every envelope row for one table.
func (a *Adapter) fetchRows(ctx context.Context, table string) ([]row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.endpoint+"?table_type="+url.QueryEscape(table), nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Pull retrieves the remote snapshot for one table and decodes each row's
// embedded payload. Rows that fail to decode are dropped silently; any
// transport or status failure yields an empty slice plus a SyncError.
func (a *Adapter) Pull(ctx context.Context, table string) ([]json.RawMessage, *SyncError) {
	if !a.Enabled() {
		return nil, nil
	}
	rows, err := a.fetchRows(ctx, table)
	if err != nil {
		return nil, &SyncError{Op: "pull", Table: table, Err: err}
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, rw := range rows {
		if rw.Data == "" || !json.Valid([]byte(rw.Data)) {
			continue
		}
		records = append(records, json.RawMessage(rw.Data))
	}
	return records, nil
}

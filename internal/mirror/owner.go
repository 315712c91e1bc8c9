// This file implements the two special-purpose remote paths: the named-field
// write that captures a new merchant's contact details, and the
// timeout-bounded storefront code verification used by customer signup.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukaforge/storefront/pkg/types"
)

// OwnerRegistration carries the contact details captured when a merchant
// signs up. It travels as human-readable named columns, not the opaque
// envelope used by collection replication.
type OwnerRegistration struct {
	Email     string
	Password  string
	StoreName string
	WhatsApp  string
	Specialty string
	FullName  string
}

// specialtyNames maps the signup specialty codes to display text.
var specialtyNames = map[string]string{
	"both":   "Sweet & Savory",
	"sweet":  "Sweets / Confectionery",
	"savory": "Savory / Snacks",
	"lunch":  "Lunch Boxes / Meals",
}

// RegisterOwner writes a merchant signup record with fixed named columns.
// Registration awaits this call but swallows its result; the returned
// SyncError is for logging only.
func (a *Adapter) RegisterOwner(ctx context.Context, reg OwnerRegistration) *SyncError {
	if !a.Enabled() {
		return nil
	}

	specialty := specialtyNames[reg.Specialty]
	if specialty == "" {
		specialty = reg.Specialty
	}
	record := map[string]string{
		"Email":       reg.Email,
		"Password":    reg.Password,
		"Store Name":  reg.StoreName,
		"WhatsApp":    reg.WhatsApp,
		"Specialty":   specialty,
		"Full Name":   reg.FullName,
		"Signup Date": time.Now().UTC().Format("2006-01-02"),
	}

	body, err := json.Marshal(record)
	if err != nil {
		return &SyncError{Op: "register", Table: "owners", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SyncError{Op: "register", Table: "owners", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return &SyncError{Op: "register", Table: "owners", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SyncError{Op: "register", Table: "owners",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

// VerifyStoreCode resolves a storefront code against the local store, and
// when that misses, against the remote mirror under a fixed ceiling. Remote
// results are merged additively before the second lookup, so verification
// leaves the local store caught up. Failure or timeout falls back to
// whatever the local store holds; this call never errors.
func (a *Adapter) VerifyStoreCode(ctx context.Context, code string, ceiling time.Duration) *types.Storefront {
	if s := a.repo.StorefrontByCode(code); s != nil {
		return s
	}
	if !a.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	raw, err := a.Pull(ctx, types.StorefrontsCollection)
	if err != nil {
		a.log.Warn("store code verification pull failed, using local data only")
		return a.repo.StorefrontByCode(code)
	}
	if len(raw) > 0 {
		merged := mergeByKey(a.repo.Storefronts(), decodeAll[types.Storefront](raw),
			func(rec types.Storefront) string { return rec.ID })
		a.repo.SaveStorefronts(merged)
	}
	return a.repo.StorefrontByCode(code)
}

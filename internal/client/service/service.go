// Package service holds the typed adapters for the E-Profile REST
// collections. Every adapter follows the same contract: build a query string
// from the provided filters plus an optional orderby, issue the request,
// unwrap the {status, data, message} envelope, and fail fast with the server
// message (or a Vietnamese fallback) when status is not "success". Nothing is
// retried; callers surface the error.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/vietsport/eprofile/internal/client/api"
	"github.com/vietsport/eprofile/internal/models"
)

// Filters are query-string equality filters. Nil and empty-string values are
// skipped, matching the dashboard's query builder.
type Filters map[string]any

// buildQuery renders filters plus orderby ("<field>-<asc|desc>") into URL
// query values.
func buildQuery(filters Filters, orderby string) url.Values {
	q := url.Values{}
	for k, v := range filters {
		if v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s == "" {
			continue
		}
		q.Set(k, s)
	}
	if orderby != "" {
		q.Set("orderby", orderby)
	}
	return q
}

func envelopeErr(message, fallback string) error {
	if message != "" {
		return errors.New(message)
	}
	return errors.New(fallback)
}

// list fetches a collection and unwraps the envelope.
func list[T any](ctx context.Context, c *api.Client, path, fallback string, filters Filters, orderby string) ([]T, error) {
	var env models.Envelope[[]T]
	if err := c.Get(ctx, path, buildQuery(filters, orderby), &env); err != nil {
		return nil, err
	}
	if env.Status != models.StatusSuccess {
		return nil, envelopeErr(env.Message, fallback)
	}
	return env.Data, nil
}

// getOne fetches a single record by id.
func getOne[T any](ctx context.Context, c *api.Client, path, fallback string) (*T, error) {
	var env models.Envelope[T]
	if err := c.Get(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Status != models.StatusSuccess {
		return nil, envelopeErr(env.Message, fallback)
	}
	return &env.Data, nil
}

// create posts a record with any id field stripped (the server owns ids) and
// returns the echoed record, which may be absent.
func create[T any](ctx context.Context, c *api.Client, path, fallback string, payload any) (*T, error) {
	body, err := stripID(payload)
	if err != nil {
		return nil, err
	}
	var env models.Envelope[*T]
	if err := c.Post(ctx, path, body, &env); err != nil {
		return nil, err
	}
	if env.Status != models.StatusSuccess {
		return nil, envelopeErr(env.Message, fallback)
	}
	return env.Data, nil
}

// update puts a record with any id field stripped.
func update[T any](ctx context.Context, c *api.Client, path, fallback string, payload any) (*T, error) {
	body, err := stripID(payload)
	if err != nil {
		return nil, err
	}
	var env models.Envelope[*T]
	if err := c.Put(ctx, path, body, &env); err != nil {
		return nil, err
	}
	if env.Status != models.StatusSuccess {
		return nil, envelopeErr(env.Message, fallback)
	}
	return env.Data, nil
}

// remove deletes a record and reports the envelope outcome as an ok/message
// pair rather than an error.
func remove(ctx context.Context, c *api.Client, path string) (ok bool, message string, err error) {
	var env models.Envelope[json.RawMessage]
	if err := c.Delete(ctx, path, &env); err != nil {
		return false, "", err
	}
	return env.Status == models.StatusSuccess, env.Message, nil
}

// stripID renders payload as a JSON object without its id field; the server
// assigns and owns ids. Nil values are dropped like empty filters.
func stripID(payload any) (map[string]any, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	delete(m, "id")
	for k, v := range m {
		if v == nil {
			delete(m, k)
		}
	}
	return m, nil
}

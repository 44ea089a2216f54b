package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"millflow/pkg/orderform"
)

// ResourceSpec describes how one transaction resource appears on the wire:
// its URL segment, envelope keys and the per-resource field names that map
// onto the neutral TransactionRecord shape.
type ResourceSpec struct {
	Path         string // URL segment, e.g. "mill-inputs"
	DataKey      string // list payload key, e.g. "millInputs"
	ItemKey      string // create payload key, e.g. "millInput"
	RefField     string
	QtyField     string
	DateField    string
	MillField    string // empty when the resource has no mill component
	ProcessField string // empty when the resource has no process label
	Key          orderform.KeyFunc
}

var (
	MillInputs = ResourceSpec{
		Path: "mill-inputs", DataKey: "millInputs", ItemKey: "millInput",
		RefField: "chalanNo", QtyField: "greyMtr", DateField: "date",
		MillField: "mill", ProcessField: "processName",
		Key: orderform.MillInputKey,
	}
	MillOutputs = ResourceSpec{
		Path: "mill-outputs", DataKey: "millOutputs", ItemKey: "millOutput",
		RefField: "millBillNo", QtyField: "finishMtr", DateField: "recdDate",
		ProcessField: "processName",
		Key:          orderform.MillOutputKey,
	}
	Dispatches = ResourceSpec{
		Path: "dispatches", DataKey: "dispatches", ItemKey: "dispatch",
		RefField: "billNo", QtyField: "mtr", DateField: "date",
		Key: orderform.DispatchKey,
	}
)

// RecordStore implements orderform.Store for one resource over HTTP.
type RecordStore struct {
	client *Client
	spec   ResourceSpec
}

func (c *Client) Records(spec ResourceSpec) *RecordStore {
	return &RecordStore{client: c, spec: spec}
}

func (s *RecordStore) List(ctx context.Context, orderID string) ([]orderform.TransactionRecord, error) {
	data, err := s.client.do(ctx, http.MethodGet, "/api/"+s.spec.Path, url.Values{"orderId": {orderID}}, nil)
	if err != nil {
		return nil, err
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	var rows []map[string]json.RawMessage
	if raw, ok := payload[s.spec.DataKey]; ok {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
	}
	recs := make([]orderform.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, s.decode(row))
	}
	return recs, nil
}

func (s *RecordStore) Create(ctx context.Context, rec orderform.TransactionRecord) (orderform.TransactionRecord, error) {
	body := map[string]any{
		"orderId":        json.Number(rec.OrderID),
		s.spec.RefField:  rec.RefNo,
		s.spec.DateField: rec.Date,
		s.spec.QtyField:  rec.Quantity,
		"quality":        rec.Quality,
	}
	if s.spec.MillField != "" {
		body[s.spec.MillField] = rec.Mill
	}
	if s.spec.ProcessField != "" {
		body[s.spec.ProcessField] = rec.Process
	}
	data, err := s.client.do(ctx, http.MethodPost, "/api/"+s.spec.Path, nil, body)
	if err != nil {
		return orderform.TransactionRecord{}, err
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return orderform.TransactionRecord{}, err
	}
	if raw, ok := payload[s.spec.ItemKey]; ok {
		var row map[string]json.RawMessage
		if err := json.Unmarshal(raw, &row); err == nil {
			return s.decode(row), nil
		}
	}
	return rec, nil
}

func (s *RecordStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/"+s.spec.Path+"/"+id, nil, nil)
	return err
}

func (s *RecordStore) decode(row map[string]json.RawMessage) orderform.TransactionRecord {
	rec := orderform.TransactionRecord{
		ID:      jsonString(row, "id"),
		OrderID: jsonString(row, "orderId"),
		RefNo:   jsonString(row, s.spec.RefField),
		Date:    normalizeDate(jsonString(row, s.spec.DateField)),
		Quality: jsonString(row, "quality"),
	}
	if s.spec.MillField != "" {
		rec.Mill = jsonString(row, s.spec.MillField)
	}
	if s.spec.ProcessField != "" {
		rec.Process = jsonString(row, s.spec.ProcessField)
	}
	if raw, ok := row[s.spec.QtyField]; ok {
		_ = json.Unmarshal(raw, &rec.Quantity)
	}
	if t, err := time.Parse(time.RFC3339, jsonString(row, "createdAt")); err == nil {
		rec.CreatedAt = t
	}
	return rec
}

// jsonString reads a field that may arrive as a JSON string or number.
func jsonString(row map[string]json.RawMessage, key string) string {
	raw, ok := row[key]
	if !ok {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	return ""
}

// normalizeDate trims server timestamps down to the yyyy-mm-dd form the form
// fields and grouping keys work with.
func normalizeDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	if len(s) >= 10 {
		if _, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return s[:10]
		}
	}
	return s
}

var _ orderform.Store = (*RecordStore)(nil)

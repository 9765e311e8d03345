package store

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Memory is an in-process Store that evaluates the same bson filter and
// update vocabulary the Mongo implementation sends to the server ($gt, $gte,
// $lt, $lte, $regex, $or, $set, $inc). It backs the handler tests and allows
// running the server without a database.
type Memory struct {
	mu   sync.Mutex
	cols map[string]*memoryCollection
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{cols: make(map[string]*memoryCollection)}
}

// Collection returns the named collection, creating it on first use.
func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cols[name]
	if !ok {
		c = &memoryCollection{}
		m.cols[name] = c
	}
	return c
}

type memoryCollection struct {
	mu   sync.Mutex
	docs []bson.M
}

func (c *memoryCollection) InsertOne(_ context.Context, doc interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := toDoc(doc)
	if err != nil {
		return nil, err
	}
	id, ok := d["_id"]
	if !ok {
		id = primitive.NewObjectID()
		d["_id"] = id
	}
	c.docs = append(c.docs, d)
	return id, nil
}

func (c *memoryCollection) FindOne(_ context.Context, filter interface{}, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.docs {
		if matchFilter(d, filter) {
			return decodeDoc(d, out)
		}
	}
	return ErrNotFound
}

func (c *memoryCollection) Find(_ context.Context, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []bson.M
	for _, d := range c.docs {
		if matchFilter(d, filter) {
			matched = append(matched, d)
		}
	}
	for _, opt := range opts {
		if opt != nil && opt.Sort != nil {
			sortDocs(matched, opt.Sort)
		}
	}
	return decodeAll(matched, out)
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter, update interface{}) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.docs {
		if matchFilter(d, filter) {
			if err := applyUpdate(d, update); err != nil {
				return 0, err
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) CountDocuments(_ context.Context, filter interface{}) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, d := range c.docs {
		if matchFilter(d, filter) {
			n++
		}
	}
	return n, nil
}

func (c *memoryCollection) Distinct(_ context.Context, field string, filter interface{}) ([]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var values []interface{}
	seen := make(map[interface{}]bool)
	for _, d := range c.docs {
		if !matchFilter(d, filter) {
			continue
		}
		v, ok := d[field]
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values, nil
}

// toDoc round-trips a value through bson so documents are stored in the same
// representation the driver would hand back (DateTime, ObjectID, bson.A).
func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func decodeAll(docs []bson.M, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: out must be a pointer to a slice, got %T", out)
	}
	slice := v.Elem()
	for _, d := range docs {
		elem := reflect.New(slice.Type().Elem())
		if err := decodeDoc(d, elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

func matchFilter(doc bson.M, filter interface{}) bool {
	f, ok := filter.(bson.M)
	if !ok {
		return false
	}
	for key, cond := range f {
		if key == "$or" {
			if !matchOr(doc, cond) {
				return false
			}
			continue
		}
		if !matchField(doc[key], cond) {
			return false
		}
	}
	return true
}

func matchOr(doc bson.M, cond interface{}) bool {
	switch branches := cond.(type) {
	case []bson.M:
		for _, b := range branches {
			if matchFilter(doc, b) {
				return true
			}
		}
	case bson.A:
		for _, b := range branches {
			if matchFilter(doc, b) {
				return true
			}
		}
	case []interface{}:
		for _, b := range branches {
			if matchFilter(doc, b) {
				return true
			}
		}
	}
	return false
}

func matchField(val, cond interface{}) bool {
	ops, ok := cond.(bson.M)
	if !ok {
		return equalValues(val, cond)
	}
	if pattern, hasRegex := ops["$regex"]; hasRegex {
		return matchRegex(val, pattern, ops["$options"])
	}
	for op, arg := range ops {
		cmp, ok := compareValues(val, arg)
		if !ok {
			return false
		}
		switch op {
		case "$gt":
			if cmp <= 0 {
				return false
			}
		case "$gte":
			if cmp < 0 {
				return false
			}
		case "$lt":
			if cmp >= 0 {
				return false
			}
		case "$lte":
			if cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchRegex(val, pattern, opts interface{}) bool {
	s, ok := val.(string)
	if !ok {
		return false
	}
	p, ok := pattern.(string)
	if !ok {
		return false
	}
	if o, _ := opts.(string); strings.Contains(o, "i") {
		p = "(?i)" + p
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func equalValues(a, b interface{}) bool {
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b interface{}) (int, bool) {
	fa, okA := numeric(a)
	fb, okB := numeric(b)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	}
	return 0, true
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}

func isInteger(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64:
		return true
	}
	return false
}

func applyUpdate(doc bson.M, update interface{}) error {
	u, ok := update.(bson.M)
	if !ok {
		return fmt.Errorf("store: unsupported update type %T", update)
	}
	for op, fields := range u {
		fv, ok := fields.(bson.M)
		if !ok {
			return fmt.Errorf("store: unsupported %s operand %T", op, fields)
		}
		switch op {
		case "$set":
			for k, v := range fv {
				set, err := toValue(v)
				if err != nil {
					return err
				}
				doc[k] = set
			}
		case "$inc":
			for k, v := range fv {
				cur, _ := numeric(doc[k])
				delta, ok := numeric(v)
				if !ok {
					return fmt.Errorf("store: non-numeric $inc for %q", k)
				}
				if isInteger(doc[k]) && isInteger(v) {
					doc[k] = int64(cur) + int64(delta)
				} else {
					doc[k] = cur + delta
				}
			}
		default:
			return fmt.Errorf("store: unsupported update operator %q", op)
		}
	}
	return nil
}

// toValue normalizes a $set value through bson the same way insertion does,
// so later decodes see driver-shaped values (e.g. time.Time -> DateTime).
func toValue(v interface{}) (interface{}, error) {
	wrapped, err := toDoc(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return wrapped["v"], nil
}

func sortDocs(docs []bson.M, sortSpec interface{}) {
	var key string
	descending := false
	switch s := sortSpec.(type) {
	case bson.D:
		if len(s) == 0 {
			return
		}
		key = s[0].Key
		if d, ok := numeric(s[0].Value); ok && d < 0 {
			descending = true
		}
	case bson.M:
		for k, v := range s {
			key = k
			if d, ok := numeric(v); ok && d < 0 {
				descending = true
			}
			break
		}
	default:
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		cmp, ok := compareValues(docs[i][key], docs[j][key])
		if !ok {
			return false
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

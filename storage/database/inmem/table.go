package inmemdb

import (
	"sort"
	"sync"
)

// Table is an id-keyed collection of records of one kind.
// Ids are assigned on Create, start at 1 and are never reused, even after a Delete.
type Table[E any] struct {
	mutex  sync.RWMutex
	rows   map[int]E
	lastID int
	setID  func(e *E, id int)
}

func NewTable[E any](setID func(e *E, id int)) *Table[E] {
	return &Table[E]{
		rows:  make(map[int]E),
		setID: setID,
	}
}

// Create assigns the next id to e, stores it and returns the stored record.
func (t *Table[E]) Create(e E) E {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.lastID++
	t.setID(&e, t.lastID)
	t.rows[t.lastID] = e
	return e
}

// Get returns the record with the given id; ok is false when absent.
func (t *Table[E]) Get(id int) (E, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	e, ok := t.rows[id]
	return e, ok
}

// All returns a snapshot of every record, ordered by id.
func (t *Table[E]) All() []E {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.all()
}

func (t *Table[E]) all() []E {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]E, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

// Find returns the lowest-id record matching the predicate.
func (t *Table[E]) Find(match func(E) bool) (E, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	for _, e := range t.all() {
		if match(e) {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Filter returns every record matching the predicate, ordered by id.
func (t *Table[E]) Filter(match func(E) bool) []E {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	rows := make([]E, 0)
	for _, e := range t.all() {
		if match(e) {
			rows = append(rows, e)
		}
	}
	return rows
}

// Update applies patch to a copy of the record and stores the result.
// The id is restored after the patch so it can never change.
func (t *Table[E]) Update(id int, patch func(e *E)) (E, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	e, ok := t.rows[id]
	if !ok {
		return e, false
	}
	patch(&e)
	t.setID(&e, id)
	t.rows[id] = e
	return e, true
}

// Delete removes the record with the given id and reports whether it existed.
func (t *Table[E]) Delete(id int) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *Table[E]) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.rows)
}

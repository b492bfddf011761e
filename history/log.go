package history

// Observer receives availability changes. Either field may be nil.
//
// Notifications are edge-triggered: CanUndo fires when the cursor moves
// between 0 and 1, CanRedo when it moves between the end of the log and
// one before it (or when recording truncates a redo tail).
type Observer struct {
	CanUndo func(bool)
	CanRedo func(bool)
}

func (o Observer) canUndo(v bool) {
	if o.CanUndo != nil {
		o.CanUndo(v)
	}
}

func (o Observer) canRedo(v bool) {
	if o.CanRedo != nil {
		o.CanRedo(v)
	}
}

// Log is a linear undo/redo history. It is not safe for concurrent use.
type Log struct {
	records []Entry
	cur     int
	obs     Observer
}

// New returns a log restored from records with the cursor at cur.
// cur is clamped to [0, len(records)]. No observer is called.
func New(records []Entry, cur int, obs Observer) *Log {
	if cur < 0 {
		cur = 0
	}
	if cur > len(records) {
		cur = len(records)
	}
	return &Log{records: records, cur: cur, obs: obs}
}

// Record truncates any redo tail and appends e.
func (l *Log) Record(e Entry) {
	if l.cur < len(l.records) {
		clear(l.records[l.cur:])
		l.records = l.records[:l.cur]
		l.obs.canRedo(false)
	}
	l.records = append(l.records, e)
	l.cur++
	if l.cur == 1 {
		l.obs.canUndo(true)
	}
}

// Undo moves the cursor back and returns the entry to revert.
// ok is false at the start of the log.
func (l *Log) Undo() (e Entry, ok bool) {
	if l.cur == 0 {
		return Entry{}, false
	}
	l.cur--
	e = l.records[l.cur]
	if l.cur == len(l.records)-1 {
		l.obs.canRedo(true)
	}
	if l.cur == 0 {
		l.obs.canUndo(false)
	}
	return e, true
}

// Redo returns the entry to reapply and moves the cursor forward.
// ok is false at the end of the log.
func (l *Log) Redo() (e Entry, ok bool) {
	if l.cur >= len(l.records) {
		return Entry{}, false
	}
	e = l.records[l.cur]
	l.cur++
	if l.cur == len(l.records) {
		l.obs.canRedo(false)
	}
	if l.cur == 1 {
		l.obs.canUndo(true)
	}
	return e, true
}

// Cursor returns the number of applied entries.
func (l *Log) Cursor() int { return l.cur }

// Len returns the number of entries, applied or not.
func (l *Log) Len() int { return len(l.records) }

// CanUndo reports whether Undo would succeed.
func (l *Log) CanUndo() bool { return l.cur > 0 }

// CanRedo reports whether Redo would succeed.
func (l *Log) CanRedo() bool { return l.cur < len(l.records) }

// Records returns a copy of the entries.
func (l *Log) Records() []Entry {
	return append([]Entry(nil), l.records...)
}

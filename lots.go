package portfolio

// lots is the queue of open buy lots during FIFO matching.
//
// Lots are consumed strictly front-to-back, so instead of popping from a
// slice the queue keeps a head index. Records are held by value: each lot
// is owned by the queue and mutated in place as sells consume it.
type lots struct {
	records []Record
	head    int
}

// push appends a buy lot with its full quantity still open.
func (l *lots) push(r Record) { l.records = append(l.records, r) }

// empty reports whether no open lot remains.
func (l *lots) empty() bool { return l.head >= len(l.records) }

// front returns the oldest open lot. It panics when empty.
func (l *lots) front() *Record { return &l.records[l.head] }

// pop discards the oldest open lot once fully consumed.
func (l *lots) pop() { l.head++ }

package draft

import (
	"sync"
	"time"

	"glanz-rental-backend/internal/domain"
)

// Draft is the mutable working set for an order being authored or edited.
// Instances are constructed and injected explicitly; there is no package
// global. A mutex makes the aggregate safe against the asynchronous fetch
// callbacks that drive LoadOrder.
type Draft struct {
	mu sync.Mutex

	customerID    int64
	customerName  string
	customerPhone string
	startDate     string
	endDate       string
	invoiceNo     string
	depositCents  int64
	items         []domain.LineItem // insertion order, newest first

	// Load guard. A fetch completion may fire more than once (retry,
	// re-render, navigation races); repeated loads for the same order id are
	// dropped until Clear. loadGen counts accepted loads, loading is set for
	// the duration of a rebuild so AddItem cannot interleave.
	loading       bool
	loadGen       uint64
	loadedOrderID int64
}

// Snapshot is a read-only copy of the draft state, taken for submission.
type Snapshot struct {
	OrderID       int64 // 0 for a new order
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	StartDate     string
	EndDate       string
	InvoiceNo     string
	DepositCents  int64
	Items         []domain.LineItem
}

// New returns an empty draft with the date range defaulting to
// [now, now+24h].
func New() *Draft {
	d := &Draft{}
	d.resetLocked(time.Now())
	return d
}

func (d *Draft) resetLocked(now time.Time) {
	d.customerID = 0
	d.customerName = ""
	d.customerPhone = ""
	d.startDate = now.Format(time.RFC3339)
	d.endDate = now.Add(24 * time.Hour).Format(time.RFC3339)
	d.invoiceNo = ""
	d.depositCents = 0
	d.items = nil
}

func (d *Draft) SetCustomer(id int64, name, phone string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customerID = id
	d.customerName = name
	d.customerPhone = phone
}

// SetStartDate replaces the start date string. No cross-validation against
// the end date happens here; that is a submission-time concern.
func (d *Draft) SetStartDate(iso string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startDate = iso
}

func (d *Draft) SetEndDate(iso string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.endDate = iso
}

func (d *Draft) SetInvoiceNo(no string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invoiceNo = no
}

func (d *Draft) SetDeposit(cents int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depositCents = cents
}

// AddItem prepends the item to the sequence. It reports false without
// mutating when a load rebuild is underway or when an item with the same
// identity key already exists.
func (d *Draft) AddItem(item domain.LineItem) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return false
	}
	key := item.IdentityKey()
	for i := range d.items {
		if d.items[i].IdentityKey() == key {
			return false
		}
	}
	d.items = append([]domain.LineItem{item}, d.items...)
	return true
}

// UpdateItem replaces the item at index. Out-of-bounds indexes are a no-op.
func (d *Draft) UpdateItem(index int, item domain.LineItem) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.items) {
		return false
	}
	d.items[index] = item
	return true
}

// RemoveItem removes the item at index. Out-of-bounds indexes are a no-op.
func (d *Draft) RemoveItem(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.items) {
		return false
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	return true
}

// LoadOrder replaces the draft wholesale with the given order: the item list
// is discarded and rebuilt, never appended to. Repeated invocations with the
// same order id are dropped (reported false) until Clear, which makes the
// operation idempotent under duplicate fetch completions. A load for a
// different order id is accepted and replaces the current state.
func (d *Draft) LoadOrder(o *domain.Order) bool {
	if o == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loadGen > 0 && d.loadedOrderID == o.ID {
		return false
	}
	d.loading = true
	d.loadGen++
	d.resetLocked(time.Now())

	d.customerID = o.CustomerID
	d.customerName = o.CustomerName
	d.customerPhone = o.CustomerPhone
	d.startDate = o.StartDate
	d.endDate = o.EndDate
	d.invoiceNo = o.InvoiceNo
	d.depositCents = o.DepositCents
	d.items = dedupItems(o.Items)

	d.loadedOrderID = o.ID
	d.loading = false
	return true
}

// dedupItems keeps the first occurrence of each identity key. One pass is
// sufficient; the data source occasionally hands back duplicate rows.
func dedupItems(items []domain.LineItem) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		key := it.IdentityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Clear resets the draft to the empty default and drops all guard state.
// It represents explicit abandonment (or a completed submission) and always
// succeeds, regardless of any load in flight.
func (d *Draft) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	d.loadGen = 0
	d.loadedOrderID = 0
	d.resetLocked(time.Now())
}

// Items returns a copy of the item sequence, newest first.
func (d *Draft) Items() []domain.LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.LineItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]domain.LineItem, len(d.items))
	copy(items, d.items)
	return Snapshot{
		OrderID:       d.loadedOrderID,
		CustomerID:    d.customerID,
		CustomerName:  d.customerName,
		CustomerPhone: d.customerPhone,
		StartDate:     d.startDate,
		EndDate:       d.endDate,
		InvoiceNo:     d.invoiceNo,
		DepositCents:  d.depositCents,
		Items:         items,
	}
}

package store

import (
	"errors"
	"sync"

	"github.com/golang/glog"
)

var (
	// ErrAlreadyExist error returns when Add attempts to add already existing item
	ErrAlreadyExist = errors.New("already exists")
	// ErrNotFound error returns when Remove attempts to remove a non existing item
	ErrNotFound = errors.New("not found")
	// ErrStopped error returns when the store has been stopped
	ErrStopped = errors.New("store is stopped")
)

type storeOp uint8

const (
	addItem storeOp = iota + 1
	removeItem
	getItem
	listItems
	countItems
)

type Storable interface {
	Key() string
}

var _ Storable = &Result{}

// Result is a sorted sequence keyed by the canonical form of its input.
type Result struct {
	Input  string
	Sorted []int
}

func (r *Result) Key() string {
	return r.Input
}

type key string

func (k key) Key() string {
	return string(k)
}

type Manager interface {
	Add(Storable) error
	Remove(Storable) error
	List() []Storable
	Get(string) Storable
	Len() int
	Stop()
}

var _ Manager = &itemStore{}

type mgrReply struct {
	item  []Storable
	count int
}

type storeCh struct {
	op      storeOp
	item    Storable
	replyCh chan mgrReply
	err     chan error
}

type itemStore struct {
	stopCh   chan struct{}
	opCh     chan storeCh
	capacity int
	stopOnce sync.Once
}

// Option configures a store created by NewStore.
type Option func(*itemStore)

// WithCapacity limits the store to n items, when it is full the oldest item
// is evicted to make room for a new one. n <= 0 means no limit.
func WithCapacity(n int) Option {
	return func(s *itemStore) {
		s.capacity = n
	}
}

// send hands the request to the manager, it returns false when the store
// is stopped. Once the manager accepted a request, it always replies.
func (s *itemStore) send(msg storeCh) bool {
	select {
	case s.opCh <- msg:
		return true
	case <-s.stopCh:
		return false
	}
}

func (s *itemStore) Add(i Storable) error {
	err := make(chan error)
	if !s.send(storeCh{
		op:   addItem,
		item: i,
		err:  err,
	}) {
		return ErrStopped
	}
	return <-err
}

func (s *itemStore) Remove(i Storable) error {
	err := make(chan error)
	if !s.send(storeCh{
		op:   removeItem,
		item: i,
		err:  err,
	}) {
		return ErrStopped
	}
	return <-err
}

// Get returns the item stored under the key or nil.
func (s *itemStore) Get(k string) Storable {
	repl := make(chan mgrReply)
	if !s.send(storeCh{
		op:      getItem,
		item:    key(k),
		replyCh: repl,
	}) {
		return nil
	}
	r := <-repl
	if len(r.item) == 0 {
		return nil
	}

	return r.item[0]
}

func (s *itemStore) List() []Storable {
	repl := make(chan mgrReply)
	if !s.send(storeCh{
		op:      listItems,
		replyCh: repl,
	}) {
		return nil
	}
	r := <-repl

	return r.item
}

func (s *itemStore) Len() int {
	repl := make(chan mgrReply)
	if !s.send(storeCh{
		op:      countItems,
		replyCh: repl,
	}) {
		return 0
	}
	r := <-repl

	return r.count
}

// Stop terminates the manager, pending and later calls return without blocking.
func (s *itemStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// itemList keeps stored items along with their insertion order, oldest first.
type itemList struct {
	m     map[string]Storable
	order []string
}

func (it *itemList) add(i Storable) {
	it.m[i.Key()] = i
	it.order = append(it.order, i.Key())
}

func (it *itemList) remove(k string) bool {
	if _, ok := it.m[k]; !ok {
		return false
	}
	delete(it.m, k)
	for n, o := range it.order {
		if o == k {
			it.order = append(it.order[:n], it.order[n+1:]...)
			break
		}
	}
	return true
}

func (s *itemStore) manager() {
	items := &itemList{
		m: make(map[string]Storable),
	}
	for {
		select {
		case <-s.stopCh:
			return
		case msg := <-s.opCh:
			switch msg.op {
			case addItem:
				glog.V(6).Infof("Adding item: %s", msg.item.Key())
				if _, ok := items.m[msg.item.Key()]; ok {
					msg.err <- ErrAlreadyExist
					continue
				}
				if s.capacity > 0 && len(items.m) >= s.capacity {
					oldest := items.order[0]
					glog.V(6).Infof("Store is full, evicting item: %s", oldest)
					items.remove(oldest)
				}
				items.add(msg.item)
				msg.err <- nil
			case removeItem:
				glog.V(6).Infof("Removing item: %s", msg.item.Key())
				if !items.remove(msg.item.Key()) {
					msg.err <- ErrNotFound
					continue
				}
				msg.err <- nil
			case getItem:
				glog.V(6).Infof("Getting item: %s", msg.item.Key())
				it, ok := items.m[msg.item.Key()]
				if !ok {
					msg.replyCh <- mgrReply{}
					continue
				}
				msg.replyCh <- mgrReply{
					item: []Storable{it},
				}
			case listItems:
				l := make([]Storable, 0, len(items.m))
				for _, k := range items.order {
					l = append(l, items.m[k])
				}
				msg.replyCh <- mgrReply{
					item: l,
				}
			case countItems:
				msg.replyCh <- mgrReply{
					count: len(items.m),
				}
			}
		}
	}
}

// NewStore returns a new instance of a store, any object which is compatible
// with the interface Storable, can be stored in the store.
func NewStore(opts ...Option) Manager {
	s := &itemStore{
		stopCh: make(chan struct{}),
		opCh:   make(chan storeCh),
	}
	for _, o := range opts {
		o(s)
	}
	// Starting store manager
	go s.manager()

	return s
}

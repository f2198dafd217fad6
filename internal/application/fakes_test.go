package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	"github.com/maximboltinov/ShareIt/internal/common/kafka"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
	itemDomain "github.com/maximboltinov/ShareIt/internal/domain/item"
	requestDomain "github.com/maximboltinov/ShareIt/internal/domain/itemrequest"
	userDomain "github.com/maximboltinov/ShareIt/internal/domain/user"
)

// --- users ---

type fakeUserRepo struct {
	users  map[int64]*userDomain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*userDomain.User{}, nextID: 1}
}

func (r *fakeUserRepo) seed(id int64, name, email string) {
	r.users[id] = userDomain.Reconstruct(id, name, email)
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

func (r *fakeUserRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && strings.EqualFold(u.Email(), email) {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	if r.emailTaken(u.Email(), 0) {
		return domain.NewConflictError("email already in use")
	}
	u.AssignID(r.nextID)
	r.nextID++
	cp := *u
	r.users[u.ID()] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", idString(u.ID()))
	}
	if r.emailTaken(u.Email(), u.ID()) {
		return domain.NewConflictError("email already in use")
	}
	cp := *u
	r.users[u.ID()] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", idString(id))
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	var out []*userDomain.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("User", idString(id))
	}
	delete(r.users, id)
	return nil
}

// --- items ---

type fakeItemRepo struct {
	items  map[int64]*itemDomain.Item
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[int64]*itemDomain.Item{}, nextID: 1}
}

func (r *fakeItemRepo) seed(id, ownerID int64, name string, available bool) *itemDomain.Item {
	it := itemDomain.Reconstruct(id, ownerID, name, name+" description", available, nil)
	r.items[id] = it
	if id >= r.nextID {
		r.nextID = id + 1
	}
	return it
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	it.AssignID(r.nextID)
	r.nextID++
	cp := *it
	r.items[it.ID()] = &cp
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	cp := *it
	r.items[it.ID()] = &cp
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id int64) (*itemDomain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", idString(id))
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) sorted(keep func(*itemDomain.Item) bool) []*itemDomain.Item {
	var out []*itemDomain.Item
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID int64, page domain.Page) ([]*itemDomain.Item, error) {
	return paginate(r.sorted(func(it *itemDomain.Item) bool { return it.OwnerID() == ownerID }), page), nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, page domain.Page) ([]*itemDomain.Item, error) {
	needle := strings.ToLower(text)
	return paginate(r.sorted(func(it *itemDomain.Item) bool {
		return it.Available() && (strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle))
	}), page), nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, requestIDs []int64) ([]*itemDomain.Item, error) {
	wanted := map[int64]bool{}
	for _, id := range requestIDs {
		wanted[id] = true
	}
	return r.sorted(func(it *itemDomain.Item) bool {
		return it.RequestID() != nil && wanted[*it.RequestID()]
	}), nil
}

// --- comments ---

type fakeCommentRepo struct {
	comments []*itemDomain.Comment
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	c.AssignID(int64(len(r.comments) + 1))
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) FindByItem(_ context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	return r.FindByItems(context.Background(), []int64{itemID})
}

func (r *fakeCommentRepo) FindByItems(_ context.Context, itemIDs []int64) ([]*itemDomain.Comment, error) {
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		for _, id := range itemIDs {
			if c.ItemID() == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// --- item requests ---

type fakeRequestRepo struct {
	requests map[int64]*requestDomain.ItemRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[int64]*requestDomain.ItemRequest{}, nextID: 1}
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.ItemRequest) error {
	req.AssignID(r.nextID)
	r.nextID++
	r.requests[req.ID()] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id int64) (*requestDomain.ItemRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", idString(id))
	}
	return req, nil
}

func (r *fakeRequestRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.requests[id]
	return ok, nil
}

func (r *fakeRequestRepo) FindByAuthor(_ context.Context, authorID int64) ([]*requestDomain.ItemRequest, error) {
	var out []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.AuthorID() == authorID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created().Before(out[j].Created()) })
	return out, nil
}

func (r *fakeRequestRepo) FindOthers(_ context.Context, userID int64, page domain.Page) ([]*requestDomain.ItemRequest, error) {
	var out []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.AuthorID() != userID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created().After(out[j].Created()) })
	return paginate(out, page), nil
}

// --- bookings ---

type fakeBookingRepo struct {
	bookings  map[int64]*bookingDomain.Booking
	nextID    int64
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*bookingDomain.Booking{}, nextID: 1}
}

func (r *fakeBookingRepo) seed(bk *bookingDomain.Booking) {
	r.bookings[bk.ID()] = bk
	if bk.ID() >= r.nextID {
		r.nextID = bk.ID() + 1
	}
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	bk.AssignID(r.nextID)
	r.nextID++
	cp := *bk
	r.bookings[bk.ID()] = &cp
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.bookings[bk.ID()]
	if !ok || stored.Version() != bk.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	cp := *bk
	r.bookings[bk.ID()] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", idString(id))
	}
	cp := *bk
	return &cp, nil
}

func (r *fakeBookingRepo) list(keep func(*bookingDomain.Booking) bool, page domain.Page) []*bookingDomain.Booking {
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if keep(bk) {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().After(out[j].Start()) })
	return paginate(out, page)
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID int64, c bookingDomain.Criteria, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(bk *bookingDomain.Booking) bool { return bk.BookerID() == bookerID && c.Matches(bk) }, page), nil
}

func (r *fakeBookingRepo) FindByOwner(_ context.Context, ownerID int64, c bookingDomain.Criteria, page domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(bk *bookingDomain.Booking) bool { return bk.ItemOwnerID() == ownerID && c.Matches(bk) }, page), nil
}

func (r *fakeBookingRepo) shorts(keep func(*bookingDomain.Booking) bool) []bookingDomain.ShortBooking {
	var out []bookingDomain.ShortBooking
	for _, bk := range r.bookings {
		if bk.Status() == bookingDomain.StatusApproved && keep(bk) {
			out = append(out, bk.Short())
		}
	}
	return out
}

func (r *fakeBookingRepo) FindApprovedShortByItem(_ context.Context, itemID int64) ([]bookingDomain.ShortBooking, error) {
	return r.shorts(func(bk *bookingDomain.Booking) bool { return bk.Item().ID == itemID }), nil
}

func (r *fakeBookingRepo) FindApprovedShortByOwner(_ context.Context, ownerID int64) ([]bookingDomain.ShortBooking, error) {
	return r.shorts(func(bk *bookingDomain.Booking) bool { return bk.ItemOwnerID() == ownerID }), nil
}

func (r *fakeBookingRepo) CountApprovedEndedBefore(_ context.Context, bookerID, itemID int64, instant time.Time) (int64, error) {
	n := len(r.shorts(func(bk *bookingDomain.Booking) bool {
		return bk.BookerID() == bookerID && bk.Item().ID == itemID && bk.End().Before(instant)
	}))
	return int64(n), nil
}

// --- publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, evt kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

var errBrokerDown = errors.New("kafka: broker unreachable")

func paginate[T any](all []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

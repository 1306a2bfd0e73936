package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) add(name, email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u := &domain.User{ID: r.nextID, Name: name, Email: email, CreatedAt: time.Now()}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeGroupRepo is an in-memory GroupRepository.
type fakeGroupRepo struct {
	mu      sync.Mutex
	nextID  int64
	groups  map[int64]*domain.Group
	members map[int64]map[int64]domain.GroupMember // groupID -> userID -> record
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  make(map[int64]*domain.Group),
		members: make(map[int64]map[int64]domain.GroupMember),
	}
}

// addGroup seeds a group with the given members, no creator semantics.
func (r *fakeGroupRepo) addGroup(id int64, inviteCode string, memberIDs ...int64) *domain.Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := &domain.Group{ID: id, Name: "group", InviteCode: inviteCode, CreatedAt: time.Now()}
	r.groups[id] = g
	r.members[id] = make(map[int64]domain.GroupMember)
	for _, uid := range memberIDs {
		r.members[id][uid] = domain.GroupMember{GroupID: id, UserID: uid, JoinedAt: time.Now()}
	}
	if id >= r.nextID {
		r.nextID = id
	}
	return g
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	group.ID = r.nextID
	group.CreatedAt = time.Now()
	stored := *group
	r.groups[group.ID] = &stored
	r.members[group.ID] = map[int64]domain.GroupMember{
		group.CreatedBy: {GroupID: group.ID, UserID: group.CreatedBy, IsAdmin: true, JoinedAt: time.Now()},
	}
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGroupRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.InviteCode == code {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repository.ErrGroupNotFound
}

func (r *fakeGroupRepo) ListForUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Group
	for id, members := range r.members {
		if _, ok := members[userID]; ok {
			g := *r.groups[id]
			g.MemberCount = len(members)
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGroupRepo) AddMember(ctx context.Context, member *domain.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.members[member.GroupID]
	if !ok {
		return repository.ErrGroupNotFound
	}
	if _, exists := members[member.UserID]; exists {
		return repository.ErrDuplicateMember
	}
	member.JoinedAt = time.Now()
	members[member.UserID] = *member
	return nil
}

func (r *fakeGroupRepo) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[groupID][userID]
	return ok, nil
}

func (r *fakeGroupRepo) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for uid := range r.members[groupID] {
		ids = append(ids, uid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeGroupRepo) Members(ctx context.Context, groupID int64) ([]domain.GroupMemberDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GroupMemberDetail
	for uid, m := range r.members[groupID] {
		out = append(out, domain.GroupMemberDetail{UserID: uid, IsAdmin: m.IsAdmin, JoinedAt: m.JoinedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeGroupRepo) GroupIDsOf(ctx context.Context, userID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for gid, members := range r.members {
		if _, ok := members[userID]; ok {
			ids = append(ids, gid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeGroupRepo) MemberCount(ctx context.Context, groupID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members[groupID]), nil
}

// fakeMessageRepo is an in-memory MessageRepository with a switchable
// create failure.
type fakeMessageRepo struct {
	mu         sync.Mutex
	nextID     int64
	messages   []domain.Message
	failCreate bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("storage unavailable")
	}
	r.nextID++
	message.ID = r.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) ListByGroup(ctx context.Context, groupID int64, limit int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// fakeMeetingRepo is an in-memory MeetingRepository. groups supplies
// the membership join for ListForUser.
type fakeMeetingRepo struct {
	mu       sync.Mutex
	nextID   int64
	meetings map[int64]*domain.Meeting
	rsvps    map[int64]map[int64]domain.MeetingAttendee // meetingID -> userID
	groups   *fakeGroupRepo
}

func newFakeMeetingRepo(groups *fakeGroupRepo) *fakeMeetingRepo {
	return &fakeMeetingRepo{
		meetings: make(map[int64]*domain.Meeting),
		rsvps:    make(map[int64]map[int64]domain.MeetingAttendee),
		groups:   groups,
	}
}

func (r *fakeMeetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	meeting.ID = r.nextID
	meeting.CreatedAt = time.Now()
	stored := *meeting
	r.meetings[meeting.ID] = &stored
	r.rsvps[meeting.ID] = make(map[int64]domain.MeetingAttendee)
	return nil
}

func (r *fakeMeetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, repository.ErrMeetingNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMeetingRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Meeting
	for _, m := range r.meetings {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeMeetingRepo) ListForUser(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	groupIDs, err := r.groups.GroupIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	member := make(map[int64]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		member[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Meeting
	for _, m := range r.meetings {
		if _, ok := member[m.GroupID]; ok {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeMeetingRepo) UpsertRSVP(ctx context.Context, rsvp *domain.MeetingAttendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	answers, ok := r.rsvps[rsvp.MeetingID]
	if !ok {
		return repository.ErrMeetingNotFound
	}
	rsvp.RespondedAt = time.Now()
	answers[rsvp.UserID] = *rsvp
	return nil
}

func (r *fakeMeetingRepo) Attendees(ctx context.Context, meetingID int64) ([]domain.AttendeeResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AttendeeResponse
	for uid, rsvp := range r.rsvps[meetingID] {
		out = append(out, domain.AttendeeResponse{UserID: uid, Attending: rsvp.Attending, RespondedAt: rsvp.RespondedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// fakeMaterialRepo is an in-memory MaterialRepository. users supplies
// the uploader-name join for ListByGroup.
type fakeMaterialRepo struct {
	mu        sync.Mutex
	nextID    int64
	materials map[int64]*domain.StudyMaterial
	users     *fakeUserRepo
}

func newFakeMaterialRepo(users *fakeUserRepo) *fakeMaterialRepo {
	return &fakeMaterialRepo{
		materials: make(map[int64]*domain.StudyMaterial),
		users:     users,
	}
}

func (r *fakeMaterialRepo) Create(ctx context.Context, material *domain.StudyMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	material.ID = r.nextID
	material.CreatedAt = time.Now()
	stored := *material
	r.materials[material.ID] = &stored
	return nil
}

func (r *fakeMaterialRepo) GetByID(ctx context.Context, id int64) (*domain.StudyMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, repository.ErrMaterialNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMaterialRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.StudyMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StudyMaterial
	for _, m := range r.materials {
		if m.GroupID != groupID {
			continue
		}
		copied := *m
		if u, err := r.users.GetByID(ctx, m.UploaderID); err == nil {
			copied.UploaderName = u.Name
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMaterialRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[id]; !ok {
		return repository.ErrMaterialNotFound
	}
	delete(r.materials, id)
	return nil
}

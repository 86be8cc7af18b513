package web

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/service"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrGroupActiveContest = errors.New("Group has active contest")
	ErrBadCredentials     = errors.New("invalid username or password")
)

type storeUser struct {
	ID           uint64
	Username     string
	PasswordHash []byte
	Role         string
}

// practiceRank 练习榜内部行, 输出时再转线上形态
type practiceRank struct {
	UserID   uint64
	Username string
	Score    int
	Solved   int
	LastAt   string
}

// contestRank 比赛榜内部行
type contestRank struct {
	UserID     uint64
	Username   string
	TotalScore int
	Solved     int
	LastAt     string
}

// Store 内存夹具仓库, 启动时播种一套可演示的数据
type Store struct {
	mu sync.RWMutex

	users      []storeUser
	contests   []model.Contest
	groups     []model.Group
	challenges []model.Challenge
	blogs      []model.Blog

	practiceRanks []practiceRank
	contestRanks  map[uint64][]contestRank

	nextBlogID uint64
}

func NewStore() *Store {
	now := time.Now()
	layout := time.RFC3339

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	playerHash, _ := bcrypt.GenerateFromPassword([]byte("player123"), bcrypt.DefaultCost)

	s := &Store{
		users: []storeUser{
			{ID: 1, Username: "admin", PasswordHash: adminHash, Role: "admin"},
			{ID: 2, Username: "player", PasswordHash: playerHash, Role: "player"},
		},
		contests: []model.Contest{
			{
				ID:        1,
				Name:      "Spring Qualifier",
				StartTime: now.Add(-2 * time.Hour).Format(layout),
				EndTime:   now.Add(4 * time.Hour).Format(layout),
				Type:      model.ContestTypeCompetition,
			},
			{
				ID:        2,
				Name:      "Summer Finals",
				StartTime: now.Add(48 * time.Hour).Format(layout),
				EndTime:   now.Add(72 * time.Hour).Format(layout),
				Type:      model.ContestTypeCompetition,
			},
			{
				ID:        3,
				Name:      "Winter Warmup",
				StartTime: now.Add(-96 * time.Hour).Format(layout),
				EndTime:   now.Add(-72 * time.Hour).Format(layout),
				Type:      model.ContestTypePractice,
			},
		},
		groups: []model.Group{
			{ID: 10, Name: "Web Basics", ContestID: 1, ChallengeCount: 2},
			{ID: 11, Name: "Crypto Advanced", ContestID: 2, ChallengeCount: 1},
			{ID: 12, Name: "Misc Archive", ContestID: 3, ChallengeCount: 1},
		},
		challenges: []model.Challenge{
			{ID: 100, Title: "Cookie Monster", Category: "web", Points: 100, GroupID: 10, ContestID: ptrUint64(1)},
			{ID: 101, Title: "JWT Forgery", Category: "web", Points: 200, GroupID: 10, ContestID: ptrUint64(1)},
			{ID: 102, Title: "Lattice Dreams", Category: "crypto", Points: 400, GroupID: 11, ContestID: ptrUint64(2)},
			{ID: 103, Title: "Strings Attached", Category: "misc", Points: 50, GroupID: 12, ContestID: ptrUint64(3)},
			{ID: 104, Title: "Warmup Pwn", Category: "pwn", Points: 75, GroupID: 12},
		},
		blogs: []model.Blog{
			{ID: 1, Title: "Welcome", Content: "First post.", Summary: "hello", Author: "admin", CreatedAt: now.Add(-240 * time.Hour).Format(layout)},
			{ID: 2, Title: "Writeup: Cookie Monster", Content: "Set-Cookie all the things.", Summary: "web writeup", Author: "player", CreatedAt: now.Add(-24 * time.Hour).Format(layout)},
		},
		practiceRanks: []practiceRank{
			{UserID: 2, Username: "player", Score: 425, Solved: 5, LastAt: now.Add(-3 * time.Hour).Format(layout)},
			{UserID: 1, Username: "admin", Score: 300, Solved: 3, LastAt: now.Add(-30 * time.Hour).Format(layout)},
			{UserID: 3, Username: "guest", Score: 50, Solved: 1, LastAt: now.Add(-100 * time.Hour).Format(layout)},
		},
		contestRanks: map[uint64][]contestRank{
			1: {
				{UserID: 2, Username: "player", TotalScore: 300, Solved: 2, LastAt: now.Add(-time.Hour).Format(layout)},
				{UserID: 3, Username: "guest", TotalScore: 100, Solved: 1, LastAt: now.Add(-90 * time.Minute).Format(layout)},
			},
		},
		nextBlogID: 3,
	}
	return s
}

func ptrUint64(v uint64) *uint64 {
	return &v
}

// Authenticate 校验凭据, 成功返回用户
func (s *Store) Authenticate(username, password string) (*storeUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(s.users[i].PasswordHash, []byte(password)); err != nil {
			return nil, ErrBadCredentials
		}
		user := s.users[i]
		return &user, nil
	}
	return nil, ErrBadCredentials
}

func (s *Store) Contests() []model.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Contest, len(s.contests))
	copy(out, s.contests)
	return out
}

func (s *Store) Challenges() []model.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Challenge, len(s.challenges))
	copy(out, s.challenges)
	return out
}

func (s *Store) Groups() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// DeleteGroup 所属比赛进行中时拒绝删除
func (s *Store) DeleteGroup(id uint64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.groups {
		if s.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	for _, contest := range s.contests {
		if contest.ID != s.groups[idx].ContestID {
			continue
		}
		if info := service.ResolvePhase(now, contest.StartTime, contest.EndTime); info.Phase == model.PhaseOngoing {
			return ErrGroupActiveContest
		}
	}

	s.groups = append(s.groups[:idx], s.groups[idx+1:]...)
	kept := s.challenges[:0]
	for _, challenge := range s.challenges {
		if challenge.GroupID != id {
			kept = append(kept, challenge)
		}
	}
	s.challenges = kept
	return nil
}

func (s *Store) Blogs() []model.Blog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Blog, len(s.blogs))
	copy(out, s.blogs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func (s *Store) CreateBlog(param model.CreateBlogParam, author string) model.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	blog := model.Blog{
		ID:        s.nextBlogID,
		Title:     param.Title,
		Content:   param.Content,
		Summary:   param.Summary,
		Author:    author,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.nextBlogID++
	s.blogs = append(s.blogs, blog)
	return blog
}

func (s *Store) UpdateBlog(param model.UpdateBlogParam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blogs {
		if s.blogs[i].ID != param.ID {
			continue
		}
		if param.Title != nil {
			s.blogs[i].Title = *param.Title
		}
		if param.Content != nil {
			s.blogs[i].Content = *param.Content
		}
		if param.Summary != nil {
			s.blogs[i].Summary = *param.Summary
		}
		return nil
	}
	return ErrNotFound
}

func (s *Store) DeleteBlog(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blogs {
		if s.blogs[i].ID == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// PracticePage 练习榜分页切片
func (s *Store) PracticePage(page, pageSize int) (rows []practiceRank, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total = len(s.practiceRanks)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	stop := start + pageSize
	if start > total {
		start = total
	}
	if stop > total {
		stop = total
	}
	rows = make([]practiceRank, stop-start)
	copy(rows, s.practiceRanks[start:stop])
	return rows, total
}

// ContestRanks 比赛榜全量行与比赛引用
func (s *Store) ContestRanks(contestID uint64) ([]contestRank, *model.LeaderboardContest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ref *model.LeaderboardContest
	for _, contest := range s.contests {
		if contest.ID == contestID {
			ref = &model.LeaderboardContest{ID: contest.ID, Name: contest.Name}
			break
		}
	}
	if ref == nil {
		return nil, nil, ErrNotFound
	}

	ranks := s.contestRanks[contestID]
	out := make([]contestRank, len(ranks))
	copy(out, ranks)
	return out, ref, nil
}

package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/api/handler"
	"vida-likes/internal/api/middleware"
	"vida-likes/internal/api/router"
	"vida-likes/internal/policy"
	"vida-likes/internal/service"
	"vida-likes/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = int64(1)
	adminID = int64(2)
	ghostID = int64(99)

	publishedVideo = int64(10)
	draftVideo     = int64(12)
)

type fakeUsers struct{}

func (fakeUsers) IsStaff(_ context.Context, userID int64) (bool, error) {
	switch userID {
	case aliceID:
		return false, nil
	case adminID:
		return true, nil
	default:
		return false, service.ErrUserNotFound
	}
}

func (fakeUsers) Register(_ context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if req.Username == "alice" {
		return nil, service.ErrUsernameExists
	}
	return &dto.UserInfo{ID: 3, Username: req.Username}, nil
}

func (fakeUsers) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	return nil, service.ErrInvalidCredential
}

func (fakeUsers) GetCurrentUser(_ context.Context, userID int64) (*dto.UserInfo, error) {
	return &dto.UserInfo{ID: userID, Username: "alice"}, nil
}

// fakeVideos 记录最近一次请求的访问者
type fakeVideos struct {
	lastViewer policy.Viewer
}

func (f *fakeVideos) GetDetail(_ context.Context, viewer policy.Viewer, videoID int64) (*dto.VideoInfo, error) {
	f.lastViewer = viewer
	if videoID != publishedVideo {
		return nil, service.ErrVideoNotFound
	}
	return &dto.VideoInfo{ID: videoID, IsPublished: true, Files: []dto.VideoFileInfo{}}, nil
}

func (f *fakeVideos) List(_ context.Context, viewer policy.Viewer, page, pageSize int) (*dto.VideoListData, error) {
	f.lastViewer = viewer
	return &dto.VideoListData{Videos: []dto.VideoInfo{}, Page: page, PageSize: pageSize}, nil
}

func (f *fakeVideos) ListPublishedIDs(context.Context) (*dto.VideoIDListData, error) {
	return &dto.VideoIDListData{IDs: []int64{publishedVideo}}, nil
}

// fakeLikes 内存中的点赞集合，只有 publishedVideo 可以点赞
type fakeLikes struct {
	likes map[int64]bool
	calls int
}

func (f *fakeLikes) EnsureLikeable(_ context.Context, videoID int64) error {
	if videoID != publishedVideo {
		return service.ErrVideoNotFound
	}
	return nil
}

func (f *fakeLikes) AddLike(_ context.Context, userID, videoID int64) (*dto.LikeResult, error) {
	f.calls++
	if videoID != publishedVideo {
		return nil, service.ErrVideoNotFound
	}
	status := service.LikeStatusAlreadyExists
	if !f.likes[userID] {
		f.likes[userID] = true
		status = service.LikeStatusCreated
	}
	return &dto.LikeResult{VideoID: videoID, Status: status, TotalLikes: int64(len(f.likes))}, nil
}

func (f *fakeLikes) RemoveLike(_ context.Context, userID, videoID int64) (*dto.LikeResult, error) {
	f.calls++
	if videoID != publishedVideo {
		return nil, service.ErrVideoNotFound
	}
	status := service.LikeStatusNotLiked
	if f.likes[userID] {
		delete(f.likes, userID)
		status = service.LikeStatusRemoved
	}
	return &dto.LikeResult{VideoID: videoID, Status: status, TotalLikes: int64(len(f.likes))}, nil
}

type fakeStats struct {
	err error
}

func (f fakeStats) BySubquery(context.Context) (*dto.StatisticsData, error) {
	return &dto.StatisticsData{Strategy: service.StrategySubquery, Items: []dto.UserLikesStat{}}, f.err
}

func (f fakeStats) ByGroupBy(context.Context) (*dto.StatisticsData, error) {
	return &dto.StatisticsData{Strategy: service.StrategyGroupBy, Items: []dto.UserLikesStat{}}, f.err
}

type testServer struct {
	engine *gin.Engine
	tokens *utils.TokenManager
	videos *fakeVideos
	likes  *fakeLikes
}

func newTestServer(stats fakeStats) *testServer {
	gin.SetMode(gin.TestMode)

	tokens := utils.NewTokenManager("router-test-secret", time.Hour, "vida-likes-test")
	videos := &fakeVideos{}
	likes := &fakeLikes{likes: map[int64]bool{}}
	users := fakeUsers{}

	r := gin.New()
	r.Use(middleware.RequestID())
	router.Setup(r, router.Handlers{
		Account:    handler.NewAccountHandler(users),
		Video:      handler.NewVideoHandler(videos),
		Like:       handler.NewLikeHandler(likes),
		Statistics: handler.NewStatisticsHandler(stats),
	}, middleware.NewAuthenticator(tokens, users.IsStaff))

	return &testServer{engine: r, tokens: tokens, videos: videos, likes: likes}
}

func (s *testServer) do(t *testing.T, method, path string, userID int64, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		token, err := s.tokens.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeLike(t *testing.T, w *httptest.ResponseRecorder) dto.LikeResult {
	t.Helper()
	var resp struct {
		Success bool           `json:"success"`
		Data    dto.LikeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	return resp.Data
}

func TestLikeRoutes(t *testing.T) {
	s := newTestServer(fakeStats{})
	likePath := "/api/v1/videos/10/likes"

	w := s.do(t, http.MethodPost, likePath, aliceID, "")
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeLike(t, w)
	assert.Equal(t, service.LikeStatusCreated, res.Status)
	assert.Equal(t, int64(1), res.TotalLikes)

	w = s.do(t, http.MethodPost, likePath, aliceID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.LikeStatusAlreadyExists, decodeLike(t, w).Status)

	w = s.do(t, http.MethodDelete, likePath, aliceID, "")
	require.Equal(t, http.StatusOK, w.Code)
	res = decodeLike(t, w)
	assert.Equal(t, service.LikeStatusRemoved, res.Status)
	assert.Zero(t, res.TotalLikes)

	w = s.do(t, http.MethodDelete, likePath, aliceID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.LikeStatusNotLiked, decodeLike(t, w).Status)

	w = s.do(t, http.MethodPost, "/api/v1/videos/11/likes", aliceID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, bad := range []string{"abc", "0", "-3"} {
		w = s.do(t, http.MethodPost, "/api/v1/videos/"+bad+"/likes", aliceID, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	// Token 有效但用户已不存在
	w = s.do(t, http.MethodPost, likePath, ghostID, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLikeRoutes_Anonymous(t *testing.T) {
	s := newTestServer(fakeStats{})

	tests := []struct {
		name   string
		method string
		video  int64
		want   int
	}{
		{"like published video", http.MethodPost, publishedVideo, http.StatusUnauthorized},
		{"unlike published video", http.MethodDelete, publishedVideo, http.StatusUnauthorized},
		{"like draft video", http.MethodPost, draftVideo, http.StatusNotFound},
		{"unlike draft video", http.MethodDelete, draftVideo, http.StatusNotFound},
		{"like missing video", http.MethodPost, 404, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, fmt.Sprintf("/api/v1/videos/%d/likes", tt.video), 0, "")
			assert.Equal(t, tt.want, w.Code)
		})
	}

	// 匿名请求不会修改点赞
	assert.Zero(t, s.likes.calls)

	// 携带无效 Token 时直接拒绝，不区分视频状态
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/videos/%d/likes", draftVideo), nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVideoRoutes(t *testing.T) {
	s := newTestServer(fakeStats{})

	w := s.do(t, http.MethodGet, "/api/v1/videos?page=2&page_size=500", 0, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Anonymous, s.videos.lastViewer)
	var list struct {
		Data dto.VideoListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Data.Page)
	assert.Equal(t, 20, list.Data.PageSize)

	w = s.do(t, http.MethodGet, "/api/v1/videos/10", adminID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Viewer{UserID: adminID, IsStaff: true}, s.videos.lastViewer)

	w = s.do(t, http.MethodGet, "/api/v1/videos/12", aliceID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 可选认证下携带了无效 Token 仍然拒绝
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/videos/ids", 0, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/videos/ids", aliceID, "").Code)
	w = s.do(t, http.MethodGet, "/api/v1/videos/ids", adminID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":[10]}`, dataField(t, w))
}

func TestStatisticsRoutes(t *testing.T) {
	s := newTestServer(fakeStats{})

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/statistics/subquery", 0, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/statistics/group-by", aliceID, "").Code)

	w := s.do(t, http.MethodGet, "/api/v1/statistics/subquery", adminID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"strategy":"subquery","items":[]}`, dataField(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/statistics/group-by", adminID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"strategy":"group_by","items":[]}`, dataField(t, w))

	failing := newTestServer(fakeStats{err: errors.New("db down")})
	w = failing.do(t, http.MethodGet, "/api/v1/statistics/subquery", adminID, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(fakeStats{})

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", 0, `{"username":"bob","password":"secret123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", 0, `{"username":"alice","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", 0, `{"username":"bob","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", 0, `{"username":"bob","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/auth/me", 0, "").Code)
	w = s.do(t, http.MethodGet, "/api/v1/auth/me", aliceID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, dataField(t, w), `"username":"alice"`)
	assert.Contains(t, dataField(t, w), `"is_staff":false`)

	// 管理员标记来自认证中间件本次读取的结果
	w = s.do(t, http.MethodGet, "/api/v1/auth/me", adminID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, dataField(t, w), `"is_staff":true`)
}

func TestRequestIDInEnvelope(t *testing.T) {
	s := newTestServer(fakeStats{})

	cases := []struct {
		name   string
		method string
		path   string
		userID int64
		status int
	}{
		{"success body", http.MethodGet, "/api/v1/videos/10", 0, http.StatusOK},
		{"error body", http.MethodGet, "/api/v1/videos/404", 0, http.StatusNotFound},
		{"middleware error body", http.MethodGet, "/api/v1/statistics/subquery", aliceID, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set(middleware.HeaderRequestID, "req-"+tc.name)
			if tc.userID != 0 {
				token, err := s.tokens.GenerateToken(tc.userID)
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)

			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, "req-"+tc.name, w.Header().Get(middleware.HeaderRequestID))
			var body struct {
				RequestID string `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "req-"+tc.name, body.RequestID)
		})
	}

	// 未携带时生成新 ID，响应头与响应体一致
	w := s.do(t, http.MethodGet, "/api/v1/videos/10", 0, "")
	generated := w.Header().Get(middleware.HeaderRequestID)
	require.NotEmpty(t, generated)
	assert.Contains(t, w.Body.String(), `"request_id":"`+generated+`"`)
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return string(resp.Data)
}

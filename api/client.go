package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/constants"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// Client 平台 REST 客户端. 没有网络层取消: 被新请求取代的旧请求
// 照常跑完, 其结果由调用方的 staleguard 票据丢弃.
type Client struct {
	baseURL string
	http    *http.Client
	log     loggerv2.Logger

	token  string
	userID uint64
}

func NewClient(cfg config.APIConfig, log loggerv2.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetSession 注入既有会话(测试与重连用)
func (c *Client) SetSession(token string, userID uint64) {
	c.token = token
	c.userID = userID
}

// Login 登录成功后留存会话令牌
func (c *Client) Login(ctx context.Context, param model.LoginParam) (*model.LoginResponse, error) {
	data, err := c.do(ctx, http.MethodPost, constants.LoginPath, nil, param)
	if err != nil {
		return nil, fmt.Errorf("Login failed at request: %w", err)
	}
	var resp model.LoginResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("Login failed at unmarshal response: %w", err)
	}
	c.token = resp.Token
	c.userID = resp.UserID
	return &resp, nil
}

// GetContestList 获取比赛列表(平铺数组)
func (c *Client) GetContestList(ctx context.Context) ([]model.Contest, error) {
	var contests []model.Contest
	if err := c.get(ctx, constants.GetContestListPath, nil, &contests); err != nil {
		return nil, fmt.Errorf("GetContestList failed at request: %w", err)
	}
	return contests, nil
}

// GetChallengeList 获取题目列表(平铺数组)
func (c *Client) GetChallengeList(ctx context.Context) ([]model.Challenge, error) {
	var challenges []model.Challenge
	if err := c.get(ctx, constants.GetChallengeListPath, nil, &challenges); err != nil {
		return nil, fmt.Errorf("GetChallengeList failed at request: %w", err)
	}
	return challenges, nil
}

// GetGroupList 获取题目分组列表
func (c *Client) GetGroupList(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := c.get(ctx, constants.GetGroupListPath, nil, &groups); err != nil {
		return nil, fmt.Errorf("GetGroupList failed at request: %w", err)
	}
	return groups, nil
}

// DeleteGroup 删除题目分组, 所属比赛进行中时后端会拒绝
func (c *Client) DeleteGroup(ctx context.Context, param model.DeleteGroupParam) error {
	if _, err := c.do(ctx, http.MethodDelete, constants.DeleteGroupPath, nil, param); err != nil {
		return fmt.Errorf("DeleteGroup failed at request: %w", err)
	}
	return nil
}

// GetBlogList 获取博客列表
func (c *Client) GetBlogList(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := c.get(ctx, constants.GetBlogListPath, nil, &blogs); err != nil {
		return nil, fmt.Errorf("GetBlogList failed at request: %w", err)
	}
	return blogs, nil
}

// CreateBlog 创建博客
func (c *Client) CreateBlog(ctx context.Context, param model.CreateBlogParam) error {
	if _, err := c.do(ctx, http.MethodPost, constants.CreateBlogPath, nil, param); err != nil {
		return fmt.Errorf("CreateBlog failed at request: %w", err)
	}
	return nil
}

// UpdateBlog 更新博客
func (c *Client) UpdateBlog(ctx context.Context, param model.UpdateBlogParam) error {
	if _, err := c.do(ctx, http.MethodPut, constants.UpdateBlogPath, nil, param); err != nil {
		return fmt.Errorf("UpdateBlog failed at request: %w", err)
	}
	return nil
}

// DeleteBlog 删除博客
func (c *Client) DeleteBlog(ctx context.Context, param model.DeleteBlogParam) error {
	if _, err := c.do(ctx, http.MethodDelete, constants.DeleteBlogPath, nil, param); err != nil {
		return fmt.Errorf("DeleteBlog failed at request: %w", err)
	}
	return nil
}

// GetPracticeRanking 练习排行榜原始载荷(分页信封), 归一化交给 service
func (c *Client) GetPracticeRanking(ctx context.Context, page, pageSize int) ([]byte, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	payload, err := c.getRetry(ctx, constants.GetPracticeRankingPath, query)
	if err != nil {
		return nil, fmt.Errorf("GetPracticeRanking failed at request: %w", err)
	}
	return payload, nil
}

// GetContestRanking 比赛排行榜原始载荷(平铺信封)
func (c *Client) GetContestRanking(ctx context.Context, contestID uint64) ([]byte, error) {
	query := url.Values{}
	query.Set("contest_id", strconv.FormatUint(contestID, 10))

	payload, err := c.getRetry(ctx, constants.GetContestRankingPath, query)
	if err != nil {
		return nil, fmt.Errorf("GetContestRanking failed at request: %w", err)
	}
	return payload, nil
}

// get GET 幂等, 统一走重试
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.getRetry(ctx, path, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response failed: %w", err)
	}
	return nil
}

// getRetry 幂等 GET 的重试外壳. retry.Do 兜底时会用合成文案重建错误,
// 丢掉 APIError 链, 所以真实错误自己留存, 它的返回值只当停表用.
// 4xx 是确定性结果, 不重试.
func (c *Client) getRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var (
		data    []byte
		lastErr error
	)
	_ = retry.Do(ctx, func() error {
		data, lastErr = c.do(ctx, http.MethodGet, path, query, nil)
		if lastErr == nil {
			return nil
		}
		if apiErr, ok := httptool.AsAPIError(lastErr); ok &&
			apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError {
			return nil
		}
		return lastErr
	})
	return data, lastErr
}

// checkSession 本地解析令牌声明, 过期就不再发请求.
// 非 JWT 令牌不在这里拦, 交给服务端裁决.
func (c *Client) checkSession() error {
	if c.token == "" {
		return nil
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return &httptool.APIError{
			Kind:    httptool.KindAuth,
			Status:  http.StatusUnauthorized,
			Message: "session expired",
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body failed: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.HeaderRequestIDKey, uuid.NewString())
	if c.token != "" {
		req.Header.Set(constants.HeaderAuthorizationKey, "Bearer "+c.token)
	}
	if c.userID != 0 {
		req.Header.Set(constants.HeaderUserIDKey, strconv.FormatUint(c.userID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "request transport failed",
			logger.String("path", path),
			logger.Error(err))
		return nil, httptool.FromTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httptool.FromTransport(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, httptool.FromResponse(resp.StatusCode, data)
	}
	return data, nil
}

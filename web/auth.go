package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/to404hanga/ctf_platform_client/constants"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type JWTHandler struct {
	secret []byte
}

func NewJWTHandler(secret string) *JWTHandler {
	return &JWTHandler{secret: []byte(secret)}
}

// Issue 签发 24h 有效期的 HS256 会话令牌
func (h *JWTHandler) Issue(user *storeUser) (string, error) {
	now := time.Now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("Issue failed at sign token: %w", err)
	}
	return signed, nil
}

// ExtractToken 从 Authorization 头提取 Bearer 令牌
func (h *JWTHandler) ExtractToken(c *gin.Context) string {
	auth := c.GetHeader(constants.HeaderAuthorizationKey)
	segs := strings.SplitN(auth, " ", 2)
	if len(segs) != 2 || segs[0] != "Bearer" {
		return ""
	}
	return segs[1]
}

// Middleware 登录态校验, 登录路径放行
func (h *JWTHandler) Middleware(log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == constants.LoginPath {
			c.Next()
			return
		}

		var claims UserClaims
		token, err := jwt.ParseWithClaims(h.ExtractToken(c), &claims, func(t *jwt.Token) (any, error) {
			return h.secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			log.WarnContext(c.Request.Context(), "Middleware reject unauthorized request",
				logger.String("path", c.Request.URL.Path),
				logger.Error(err))
			gintool.GinAbortError(c, http.StatusUnauthorized, "session expired")
			return
		}

		c.Set(constants.ContextUserClaimsKey, claims)
		c.Next()
	}
}

type AuthHandler struct {
	store *Store
	jwt   *JWTHandler
	log   loggerv2.Logger
}

var _ Handler = (*AuthHandler)(nil)

func NewAuthHandler(store *Store, jwtHandler *JWTHandler, log loggerv2.Logger) *AuthHandler {
	return &AuthHandler{
		store: store,
		jwt:   jwtHandler,
		log:   log,
	}
}

func (h *AuthHandler) Register(r *gin.Engine) {
	r.POST(constants.LoginPath, gintool.WrapHandler(h.Login, h.log))
}

func (h *AuthHandler) Login(c *gin.Context, param model.LoginParam) {
	user, err := h.store.Authenticate(param.Username, param.Password)
	if err != nil {
		gintool.GinError(c, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.jwt.Issue(user)
	if err != nil {
		gintool.GinError(c, http.StatusInternalServerError, err.Error())
		h.log.ErrorContext(c.Request.Context(), "Login failed", logger.Error(err))
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// operatorName 取当前登录用户名, 未登录态(理论上被中间件拦下)回退 unknown
func operatorName(c *gin.Context) string {
	value, exists := c.Get(constants.ContextUserClaimsKey)
	if !exists {
		return "unknown"
	}
	claims, ok := value.(UserClaims)
	if !ok {
		return "unknown"
	}
	return claims.Username
}

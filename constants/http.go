package constants

const (
	LoginPath = "/Login" // 登录并获取会话令牌
)

const (
	GetContestListPath     = "/GetContestList"     // 获取比赛列表
	GetChallengeListPath   = "/GetChallengeList"   // 获取题目列表
	GetGroupListPath       = "/GetGroupList"       // 获取题目分组列表
	DeleteGroupPath        = "/DeleteGroup"        // 删除题目分组
	GetBlogListPath        = "/GetBlogList"        // 获取博客列表
	CreateBlogPath         = "/CreateBlog"         // 创建博客
	UpdateBlogPath         = "/UpdateBlog"         // 更新博客
	DeleteBlogPath         = "/DeleteBlog"         // 删除博客
	GetPracticeRankingPath = "/GetPracticeRanking" // 获取练习排行榜(分页信封)
	GetContestRankingPath  = "/GetContestRanking"  // 获取比赛排行榜(平铺信封)
)

const (
	HeaderRequestIDKey     = "X-Request-ID"
	HeaderUserIDKey        = "X-User-ID"
	HeaderAuthorizationKey = "Authorization"
)

const (
	ContextUserClaimsKey = "user_claims" // 登录态中间件写入的用户声明
)

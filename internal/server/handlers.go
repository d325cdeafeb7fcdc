package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ccrtsite/internal/site"
	"ccrtsite/internal/version"
)

// HealthResponse は /api/health のレスポンス
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// StatusResponse は /api/status のレスポンス
type StatusResponse struct {
	APIStatus string   `json:"api_status"`
	Endpoints []string `json:"endpoints"`
}

// endpoints は /api/status が返す固定のエンドポイント一覧
var endpoints = []string{
	"/ - Main website (index.html)",
	"/api/health - Health check",
	"/api/status - API status",
	"/<page> - Serve HTML pages",
}

// 固定のエラーメッセージ
const (
	msgInternalError    = "Internal server error"
	msgMethodNotAllowed = "Method not allowed"
)

// SiteHandler はルーティングされたリクエストを処理する
type SiteHandler struct {
	router *site.Router
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *SiteHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: version.Name + " Backend is running",
		Version: version.Version,
	})
}

// GetStatus はAPI状態取得エンドポイントの実装
func (h *SiteHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		APIStatus: "active",
		Endpoints: endpoints,
	})
}

// ServeIndex はルートパスでインデックスページを返す
func (h *SiteHandler) ServeIndex(c *gin.Context) {
	resp, err := h.router.Index()
	if err != nil {
		internalError(c, err)
		return
	}
	writeResponse(c, resp)
}

// ServeAsset は定義済みルートに一致しないリクエストをアセットに解決する
func (h *SiteHandler) ServeAsset(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		h.MethodNotAllowed(c)
		return
	}

	resp, err := h.router.Resolve(strings.TrimPrefix(c.Request.URL.Path, "/"))
	if err != nil {
		internalError(c, err)
		return
	}
	writeResponse(c, resp)
}

// MethodNotAllowed はGET/HEAD以外のメソッドに対するレスポンス
func (h *SiteHandler) MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", "GET, HEAD")
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, site.ErrorBody{Error: msgMethodNotAllowed})
}

// ヘルパー関数

// writeResponse はルーターの結果を書き込む
func writeResponse(c *gin.Context, resp *site.Response) {
	c.Data(resp.Status, resp.ContentType, resp.Body)
}

// internalError はエラーを記録して500を返す
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, site.ErrorBody{Error: msgInternalError})
}

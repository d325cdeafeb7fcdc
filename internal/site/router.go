// Package site はリクエストパスから返すべきレスポンスを決定する静的ルーターです。
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ccrtsite/internal/assets"
)

const (
	// APIPrefix はAPI名前空間のプレフィックス
	APIPrefix = "api/"

	// DefaultExtension は拡張子のないパスに付与される
	DefaultExtension = ".html"

	jsonContentType = "application/json; charset=utf-8"
)

// Response はルーターの解決結果
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// AssetReader はアセットストアの読み込みインターフェース
type AssetReader interface {
	ReadFile(name string) ([]byte, error)
}

// Router はパスをアセットへ解決する
type Router struct {
	store AssetReader
	index string
}

// NewRouter は新しいRouterを作成する
func NewRouter(store AssetReader, index string) *Router {
	return &Router{store: store, index: index}
}

// Resolve はリクエストパス（先頭のスラッシュなし）をレスポンスに解決する
// エラーを返すのは内部エラーの場合のみ
// API名前空間以外で見つからないアセットはインデックスページにフォールバックする
func (r *Router) Resolve(path string) (*Response, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return r.Index()
	}

	isAPI := IsAPIPath(path)
	if !strings.Contains(path, ".") && !isAPI {
		path += DefaultExtension
	}

	data, err := r.store.ReadFile(path)
	switch {
	case err == nil:
		return &Response{
			Status:      http.StatusOK,
			ContentType: assets.ContentType(path, data),
			Body:        data,
		}, nil
	case !errors.Is(err, assets.ErrNotFound):
		return nil, err
	case isAPI:
		return NotFound(), nil
	default:
		// SPA風のフォールバック
		return r.Index()
	}
}

// Index はインデックスページを返す
func (r *Router) Index() (*Response, error) {
	data, err := r.store.ReadFile(r.index)
	if err != nil {
		return nil, fmt.Errorf("インデックスページの読み込みに失敗: %w", err)
	}
	return &Response{
		Status:      http.StatusOK,
		ContentType: assets.ContentType(r.index, data),
		Body:        data,
	}, nil
}

// IsAPIPath はパスがAPI名前空間に属するか判定する
func IsAPIPath(path string) bool {
	return strings.HasPrefix(strings.TrimPrefix(path, "/"), APIPrefix)
}

// NotFound はAPI名前空間の404レスポンス
func NotFound() *Response {
	return jsonResponse(http.StatusNotFound, ErrorBody{Error: "Not found"})
}

// ErrorBody はJSONエラーレスポンスの本文
type ErrorBody struct {
	Error string `json:"error"`
}

func jsonResponse(status int, v any) *Response {
	// ErrorBodyのエンコードは失敗しない
	body, _ := json.Marshal(v)
	return &Response{Status: status, ContentType: jsonContentType, Body: body}
}

// Package server は、静的サイトとステータスAPIを配信するHTTPサーバーです。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// 静的ファイルの配信、固定のJSONステータスの応答を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - /api/health と /api/status の応答
//   - それ以外のパスを site.Router でアセットに解決
//   - JSONのエラーレスポンス（404/405/500）
//   - リクエストIDの付与とリクエストログ
//
// 仕様:
//   - ルーティングはgin-gonic/ginを使用
//   - 定義済みルートに一致しないリクエストはNoRouteで処理する
//   - グレースフルシャットダウンに対応
package server

// Package assets は、静的ファイルを配信するための読み取り専用アセットストアです。
//
// 責務:
//   - アセットルート（既定では実行ファイルの一つ上のディレクトリ）からのファイル読み込み
//   - ルート外へのパス（../ など）の拒否
//   - 拡張子・内容からのContent-Type推定
//
// 仕様:
//   - ファイルシステムはspf13/aferoで抽象化し、テストではメモリ上のFSを使う
//   - 見つからない場合は ErrNotFound をラップしたエラーを返す
package assets

// Package version はサービスのバージョン情報を保持します。
package version

// Version はAPIが報告するサービスのバージョン
const Version = "1.0.0"

// Name はサービス名
const Name = "CCRT-RSII"

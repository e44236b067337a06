package main

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Estimate SCTE-35 pre-roll from analyzer output":         "解析結果から SCTE-35 のプリロールを推定",
		"YAML configuration file":                                "YAML 設定ファイル",
		"Number of records estimated concurrently":               "同時に推定するレコード数",
		"Apply each section's pts_adjustment to its splice time": "各セクションの pts_adjustment をスプライス時刻に適用",
		"Log level (debug, info, warn, error)":                   "ログレベル（debug, info, warn, error）",
	})
}

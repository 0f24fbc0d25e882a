package gemini

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultModel はGemini APIのデフォルトモデルです。
const DefaultModel = "gemini-2.5-flash"

// Config はモデルプールと再試行の設定を保持します。
type Config struct {
	PrimaryModels     []string      // 初回呼び出しでランダムに選ぶモデル
	FallbackModels    []string      // 2回目以降に順番に使うモデル
	MaxAttempts       int           // 1リクエストあたりの最大試行回数
	MaxOutputTokens   int32         // 生成トークン上限
	RetryDelay        time.Duration // 再試行間隔（指数バックオフの初期値）
	RequestsPerMinute int           // 出力側のレート制限
}

// LoadConfig は環境変数からLLMの設定を読み込みます。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// もしくは GOOGLE_API_KEY は genai クライアント自身が参照します。
func LoadConfig() Config {
	return Config{
		PrimaryModels:     splitList(os.Getenv("GEMINI_MODELS"), []string{DefaultModel, "gemini-2.5-flash-lite", "gemini-2.0-flash"}),
		FallbackModels:    splitList(os.Getenv("GEMINI_FALLBACK_MODELS"), []string{"gemini-2.0-flash-lite"}),
		MaxAttempts:       intEnv("LLM_MAX_ATTEMPTS", 3),
		MaxOutputTokens:   int32(intEnv("LLM_MAX_OUTPUT_TOKENS", 8192)),
		RetryDelay:        time.Second,
		RequestsPerMinute: intEnv("LLM_REQUESTS_PER_MINUTE", 30),
	}
}

func splitList(raw string, def []string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

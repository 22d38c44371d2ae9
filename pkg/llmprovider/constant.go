package llmprovider

import "time"

// Provider names recognised by InitializeProviders.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderQwen     = "qwen"
	ProviderGemini   = "gemini"
)

// OpenAI-compatible endpoints of the supported vendors.
const (
	BaseURLOpenAI   = "https://api.openai.com/v1"
	BaseURLDeepSeek = "https://api.deepseek.com/v1"
	BaseURLQwen     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	BaseURLGemini   = "https://generativelanguage.googleapis.com/v1beta/openai"
)

const DefaultTimeout = 30 * time.Second

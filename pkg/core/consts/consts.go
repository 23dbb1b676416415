package consts

type ContextKey string

const (
	// TraceKey 请求链路追踪ID在 context 中的键
	TraceKey ContextKey = "TraceId"
)

package summarizer

// Kind classifies the outcome of a summarization attempt.
type Kind int

const (
	// KindOK means both language summaries were produced.
	KindOK Kind = iota
	// KindUnconfigured means no AI backend is configured; no request was made.
	KindUnconfigured
	// KindTooShort means the input was below the minimum length; no request was made.
	KindTooShort
	// KindDegraded means the bilingual request failed but the single-language
	// fallback produced a primary summary.
	KindDegraded
	// KindFailed means every attempt failed.
	KindFailed
)

// String returns the lowercase name of the kind for logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnconfigured:
		return "unconfigured"
	case KindTooShort:
		return "too_short"
	case KindDegraded:
		return "degraded"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operator-facing status strings, kept in the summary language so they read
// naturally next to real summaries in logs and tooling output.
const (
	SentinelUnconfigured = "未配置 AI 服务"
	SentinelTooShort     = "内容过短，无需总结"
	SentinelTimeout      = "总结生成超时"
	SentinelFailed       = "总结生成失败"
	SentinelUnexpected   = "总结生成异常"
)

// Result is the outcome of one summarization attempt. Primary holds the
// Chinese summary, Secondary the English one. Only usable results may be
// written to storage; everything else is reported through Sentinel.
type Result struct {
	Kind      Kind
	Primary   string
	Secondary string
	sentinel  string
}

// Usable reports whether the result carries a summary worth persisting.
func (r Result) Usable() bool {
	return r.Kind == KindOK || r.Kind == KindDegraded
}

// Sentinel returns the operator-facing status string for non-usable results,
// or empty for usable ones.
func (r Result) Sentinel() string {
	if r.sentinel != "" {
		return r.sentinel
	}
	switch r.Kind {
	case KindUnconfigured:
		return SentinelUnconfigured
	case KindTooShort:
		return SentinelTooShort
	case KindFailed:
		return SentinelFailed
	default:
		return ""
	}
}

func okResult(primary, secondary string) Result {
	return Result{Kind: KindOK, Primary: primary, Secondary: secondary}
}

func degradedResult(primary string) Result {
	return Result{Kind: KindDegraded, Primary: primary}
}

func tooShortResult() Result {
	return Result{Kind: KindTooShort, sentinel: SentinelTooShort}
}

func unconfiguredResult() Result {
	return Result{Kind: KindUnconfigured, sentinel: SentinelUnconfigured}
}

func failedResult(sentinel string) Result {
	return Result{Kind: KindFailed, sentinel: sentinel}
}

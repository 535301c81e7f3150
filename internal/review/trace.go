package review

import "context"

// Phase 提交阶段
type Phase string

// 提交状态机：idle -> validating -> submitting -> success，失败回到 idle
const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
)

// SubmitTrace 提交过程钩子，字段均可为空
type SubmitTrace struct {
	PhaseChanged func(phase Phase)
	// Validated 在校验完成后调用
	Validated func(result ValidationResult)
}

type submitTraceKey struct{}

// WithSubmitTrace 返回携带提交钩子的 context，已有钩子会一并调用
func WithSubmitTrace(ctx context.Context, trace *SubmitTrace) context.Context {
	if trace == nil {
		return ctx
	}
	if old := ContextSubmitTrace(ctx); old != nil {
		trace = composeTrace(old, trace)
	}
	return context.WithValue(ctx, submitTraceKey{}, trace)
}

// ContextSubmitTrace 读取 context 中的提交钩子
func ContextSubmitTrace(ctx context.Context) *SubmitTrace {
	trace, _ := ctx.Value(submitTraceKey{}).(*SubmitTrace)
	return trace
}

func composeTrace(outer, inner *SubmitTrace) *SubmitTrace {
	return &SubmitTrace{
		PhaseChanged: func(p Phase) {
			if outer.PhaseChanged != nil {
				outer.PhaseChanged(p)
			}
			if inner.PhaseChanged != nil {
				inner.PhaseChanged(p)
			}
		},
		Validated: func(r ValidationResult) {
			if outer.Validated != nil {
				outer.Validated(r)
			}
			if inner.Validated != nil {
				inner.Validated(r)
			}
		},
	}
}

func (t *SubmitTrace) phase(p Phase) {
	if t != nil && t.PhaseChanged != nil {
		t.PhaseChanged(p)
	}
}

func (t *SubmitTrace) validated(r ValidationResult) {
	if t != nil && t.Validated != nil {
		t.Validated(r)
	}
}

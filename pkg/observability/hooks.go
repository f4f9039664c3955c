package observability

import (
	"log/slog"

	"github.com/aretw0/easel/pkg/domain"
)

// LogHooks returns hooks that write an audit trail of history activity.
func LogHooks(logger *slog.Logger) domain.HistoryHooks {
	return domain.HistoryHooks{
		OnDispatch: func(cmd domain.Command, coalesced bool) {
			logger.Info("command_dispatched", "cmd_type", cmd.Type, "coalesced", coalesced)
		},
		OnNoop: func(cmd domain.Command) {
			logger.Debug("command_noop", "cmd_type", cmd.Type)
		},
		OnUndo: func(inverse domain.Command) {
			logger.Info("history_undo", "cmd_type", inverse.Type)
		},
		OnRedo: func(cmd domain.Command) {
			logger.Info("history_redo", "cmd_type", cmd.Type)
		},
		OnClear: func() {
			logger.Info("history_cleared")
		},
		OnFault: func(cmd domain.Command, err error) {
			logger.Error("command_failed", "cmd_type", cmd.Type, "err", err)
		},
	}
}

// Chain combines hooks. Each event is delivered to every set callback in order.
func Chain(all ...domain.HistoryHooks) domain.HistoryHooks {
	var out domain.HistoryHooks
	for _, h := range all {
		h := h
		out.OnDispatch = chain2(out.OnDispatch, h.OnDispatch)
		out.OnNoop = chain1(out.OnNoop, h.OnNoop)
		out.OnUndo = chain1(out.OnUndo, h.OnUndo)
		out.OnRedo = chain1(out.OnRedo, h.OnRedo)
		out.OnFault = chain2(out.OnFault, h.OnFault)
		if h.OnClear != nil {
			prev := out.OnClear
			out.OnClear = func() {
				if prev != nil {
					prev()
				}
				h.OnClear()
			}
		}
	}
	return out
}

func chain1[A any](prev, next func(A)) func(A) {
	if next == nil {
		return prev
	}
	if prev == nil {
		return next
	}
	return func(a A) {
		prev(a)
		next(a)
	}
}

func chain2[A, B any](prev, next func(A, B)) func(A, B) {
	if next == nil {
		return prev
	}
	if prev == nil {
		return next
	}
	return func(a A, b B) {
		prev(a, b)
		next(a, b)
	}
}

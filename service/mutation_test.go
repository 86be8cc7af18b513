package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func testLogger() loggerv2.Logger {
	return loggerv2.NewZapContextLogger(zap.NewNop())
}

type deleteParam struct {
	ID uint64 `validate:"required"`
}

func TestMutatorRollbackRestoresExactSnapshot(t *testing.T) {
	mutator := NewMutator[[]string](testLogger())
	items := []string{"a", "b", "c"}

	ok, notice := mutator.Begin(context.Background(), deleteParam{ID: 1},
		func() []string {
			snap := make([]string, len(items))
			copy(snap, items)
			return snap
		},
		func() { items = []string{"a", "c"} },
		func(snap []string) { items = snap },
		"deleted")
	assert.True(t, ok)
	assert.True(t, notice.Empty())
	assert.Equal(t, []string{"a", "c"}, items, "local change applies before the remote call")

	notice = mutator.Resolve(context.Background(), errors.New("boom"))
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, items, "failure restores the snapshot exactly")
	assert.False(t, mutator.Busy())
}

func TestMutatorSuccessKeepsAppliedState(t *testing.T) {
	mutator := NewMutator[[]string](testLogger())
	items := []string{"a", "b"}

	ok, _ := mutator.Begin(context.Background(), deleteParam{ID: 1},
		func() []string { return append([]string(nil), items...) },
		func() { items = []string{"a"} },
		func(snap []string) { items = snap },
		"deleted")
	assert.True(t, ok)

	notice := mutator.Resolve(context.Background(), nil)
	assert.Equal(t, NoticeSuccess, notice.Kind)
	assert.Equal(t, "deleted", notice.Text)
	assert.Equal(t, []string{"a"}, items)
}

func TestMutatorBusyIgnoresSilently(t *testing.T) {
	mutator := NewMutator[[]string](testLogger())
	items := []string{"a", "b"}
	applied := 0

	snapshot := func() []string { return append([]string(nil), items...) }
	restore := func(snap []string) { items = snap }

	ok, _ := mutator.Begin(context.Background(), deleteParam{ID: 1}, snapshot,
		func() { applied++ }, restore, "first")
	assert.True(t, ok)

	// busy 期间的第二次请求: 不排队, 不报错, 什么都不碰
	ok, notice := mutator.Begin(context.Background(), deleteParam{ID: 2}, snapshot,
		func() { applied++ }, restore, "second")
	assert.False(t, ok)
	assert.True(t, notice.Empty())
	assert.Equal(t, 1, applied)
}

func TestMutatorValidationRejectsBeforeApply(t *testing.T) {
	mutator := NewMutator[[]string](testLogger())
	applied := false

	ok, notice := mutator.Begin(context.Background(), deleteParam{},
		func() []string { return nil },
		func() { applied = true },
		func([]string) {},
		"deleted")
	assert.False(t, ok)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Contains(t, notice.Text, "invalid input")
	assert.False(t, applied, "validation failure must not touch state")
	assert.False(t, mutator.Busy())
}

func TestMutatorResolveWithoutBeginIsNoop(t *testing.T) {
	mutator := NewMutator[[]string](testLogger())
	notice := mutator.Resolve(context.Background(), errors.New("late"))
	assert.True(t, notice.Empty())
}
